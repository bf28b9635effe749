package servehttp

import (
	"net/http"

	"lemonworks/common"
	"lemonworks/shell"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type Navigation struct {
	Module string `json:"module"`
}

type ThemeUpdate struct {
	Color string `json:"color"`
	Mode  string `json:"mode"`
}

func RegisterShellHandler(r *gin.Engine, s *shell.Shell, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/shell", middleWares...)

	g.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.State())
	})
	g.PUT("navigation", func(c *gin.Context) {
		nav := Navigation{}
		if err := c.ShouldBindBodyWith(&nav, binding.JSON); err != nil {
			panic(&common.ErrBadParam{Cause: err})
		}
		s.Navigate(nav.Module)
		c.JSON(http.StatusOK, s.State())
	})
	g.PUT("theme", func(c *gin.Context) {
		update := ThemeUpdate{}
		if err := c.ShouldBindBodyWith(&update, binding.JSON); err != nil {
			panic(&common.ErrBadParam{Cause: err})
		}
		if update.Color != "" {
			if _, err := s.SetColor(update.Color); err != nil {
				panic(err)
			}
		}
		if update.Mode != "" {
			if _, err := s.SetMode(update.Mode); err != nil {
				panic(err)
			}
		}
		c.JSON(http.StatusOK, s.State().Theme)
	})
	g.POST("theme/collapse", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.ToggleCollapsed())
	})
}
