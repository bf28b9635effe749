package servehttp

import (
	"errors"
	"net/http"
	"strconv"

	"lemonworks/common"
	"lemonworks/machinery"

	"github.com/gin-gonic/gin"
)

func RegisterMachineryHandler(r *gin.Engine, m *machinery.Manager, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/machinery", middleWares...)

	g.GET("", func(c *gin.Context) {
		overview, err := m.Overview(c.Request.Context())
		if err != nil {
			panic(err)
		}
		c.JSON(http.StatusOK, overview)
	})
	g.GET(":id/workers", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			panic(&common.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
		}
		crew, err := m.Workers(c.Request.Context(), id)
		if err != nil {
			panic(err)
		}
		c.JSON(http.StatusOK, crew)
	})
}
