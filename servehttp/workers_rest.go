package servehttp

import (
	"net/http"

	"lemonworks/common"
	"lemonworks/domain"
	"lemonworks/workers"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type Activation struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func RegisterWorkersHandler(r *gin.Engine, m *workers.Manager, middleWares ...gin.HandlerFunc) {
	// group: "", version: v1, resource: workers
	g := r.Group("/v1/workers", middleWares...)

	handler := &workersHandler{manager: m}

	g.GET("", handler.handleQuery)
	g.POST("", handler.handleCreate)
	g.GET(":id", handler.handleDetail)
	g.PATCH(":id", handler.handleUpdate)
	g.PUT(":id/active", handler.handleActivation)
	g.DELETE(":id", handler.handleDelete)
}

type workersHandler struct {
	manager *workers.Manager
}

func (h *workersHandler) handleQuery(c *gin.Context) {
	roster, err := h.manager.Roster(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, roster)
}

func (h *workersHandler) handleCreate(c *gin.Context) {
	creation := domain.WorkerCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	w, err := h.manager.Create(c.Request.Context(), creation)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, w)
}

func (h *workersHandler) handleDetail(c *gin.Context) {
	w, err := h.manager.Detail(c.Request.Context(), domain.ID(c.Param("id")))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, w)
}

func (h *workersHandler) handleUpdate(c *gin.Context) {
	patch := domain.WorkerPatch{}
	if err := c.ShouldBindBodyWith(&patch, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	w, err := h.manager.Update(c.Request.Context(), domain.ID(c.Param("id")), patch)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, w)
}

func (h *workersHandler) handleActivation(c *gin.Context) {
	activation := Activation{}
	if err := c.ShouldBindBodyWith(&activation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	w, err := h.manager.SetActive(c.Request.Context(), domain.ID(c.Param("id")), *activation.IsActive)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, w)
}

func (h *workersHandler) handleDelete(c *gin.Context) {
	if err := h.manager.Delete(c.Request.Context(), domain.ID(c.Param("id"))); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
