package servehttp

import (
	"net/http"

	"lemonworks/common"
	"lemonworks/suppliers"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type OfferQuery struct {
	IngredientID int `form:"ingredientId" binding:"required,min=1"`
}

func RegisterSuppliersHandler(r *gin.Engine, m *suppliers.Manager, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/suppliers", middleWares...)

	g.GET("", func(c *gin.Context) {
		list, err := m.List(c.Request.Context())
		if err != nil {
			panic(err)
		}
		c.JSON(http.StatusOK, list)
	})
	g.GET("offers", func(c *gin.Context) {
		query := OfferQuery{}
		if err := c.ShouldBindWith(&query, binding.Query); err != nil {
			panic(&common.ErrBadParam{Cause: err})
		}
		offers, err := m.Offers(c.Request.Context(), query.IngredientID)
		if err != nil {
			panic(err)
		}
		c.JSON(http.StatusOK, offers)
	})
}
