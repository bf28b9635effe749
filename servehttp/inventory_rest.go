package servehttp

import (
	"net/http"

	"lemonworks/common"
	"lemonworks/inventory"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type InventoryQuery struct {
	Type string `form:"type"`
}

func RegisterInventoryHandler(r *gin.Engine, m *inventory.Manager, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/inventory", middleWares...)

	handler := &inventoryHandler{manager: m}

	g.GET("", handler.handleQuery)
	g.POST("purchase-orders", handler.handleCreatePurchaseOrder)
	g.POST("batches", handler.handleRequestBatch)
}

type inventoryHandler struct {
	manager *inventory.Manager
}

func (h *inventoryHandler) handleQuery(c *gin.Context) {
	query := InventoryQuery{}
	if err := c.ShouldBindWith(&query, binding.Query); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	items, err := h.manager.Items(c.Request.Context(), query.Type)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, items)
}

func (h *inventoryHandler) handleCreatePurchaseOrder(c *gin.Context) {
	req := inventory.PurchaseOrderRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	order, err := h.manager.CreatePurchaseOrder(c.Request.Context(), req)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, order)
}

func (h *inventoryHandler) handleRequestBatch(c *gin.Context) {
	req := inventory.BatchRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	if err := h.manager.RequestBatch(c.Request.Context(), req); err != nil {
		panic(err)
	}
	c.Status(http.StatusAccepted)
}
