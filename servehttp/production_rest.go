package servehttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lemonworks/common"
	"lemonworks/domain"
	"lemonworks/event/sse"
	"lemonworks/production"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

const EventProduction = "production"

var SSEHeartbeatInterval = 30 * time.Second

type OrderSelection struct {
	OrderID domain.ID `json:"orderId" binding:"required"`
}

// RegisterProductionHandler exposes the production view. Every change of the view model is also
// pushed to the clients of the events stream.
func RegisterProductionHandler(r *gin.Engine, view *production.View, hub *sse.Hub, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/production", middleWares...)

	handler := &productionHandler{view: view, hub: hub}
	view.Subscribe(hub.Forward(EventProduction, func() interface{} { return view.ViewModel() }))

	g.GET("", handler.handleView)
	g.GET("orders", handler.handleOrders)
	g.POST("selection", handler.handleSelect)
	g.POST("start", handler.handleStart)
	g.POST("stop", handler.handleStop)
	g.POST("refresh", handler.handleRefresh)
	g.POST("orders/:id/continue", handler.handleContinue)
	g.DELETE("error", handler.handleDismissError)
	g.GET("events", handler.handleEvents)
}

type productionHandler struct {
	view *production.View
	hub  *sse.Hub
}

func (h *productionHandler) handleView(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.ViewModel())
}

func (h *productionHandler) handleOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.ViewModel().Orders)
}

func (h *productionHandler) handleSelect(c *gin.Context) {
	selection := OrderSelection{}
	if err := c.ShouldBindBodyWith(&selection, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	if err := h.view.SelectOrder(selection.OrderID); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, h.view.ViewModel())
}

func (h *productionHandler) handleStart(c *gin.Context) {
	if err := h.view.StartProduction(c.Request.Context()); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, h.view.ViewModel())
}

func (h *productionHandler) handleStop(c *gin.Context) {
	if err := h.view.StopProduction(c.Request.Context()); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, h.view.ViewModel())
}

func (h *productionHandler) handleContinue(c *gin.Context) {
	if err := h.view.ContinueProduction(c.Request.Context(), domain.ID(c.Param("id"))); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, h.view.ViewModel())
}

func (h *productionHandler) handleRefresh(c *gin.Context) {
	h.view.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, h.view.ViewModel())
}

func (h *productionHandler) handleDismissError(c *gin.Context) {
	h.view.DismissError()
	c.JSON(http.StatusOK, h.view.ViewModel())
}

// handleEvents streams view models as server sent events until the client goes away.
func (h *productionHandler) handleEvents(c *gin.Context) {
	client := sse.NewClient(uuid.New().String())
	h.hub.Register(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	_, _ = c.Writer.WriteString("event: connected\ndata: {\"client_id\":\"" + client.ID + "\"}\n\n")
	if data, err := json.Marshal(h.view.ViewModel()); err == nil {
		writeEvent(c, sse.Event{EventType: EventProduction, Data: string(data)})
	}
	c.Writer.Flush()

	heartbeat := time.NewTicker(SSEHeartbeatInterval)
	defer heartbeat.Stop()
	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			h.hub.Unregister(client.ID)
			return
		case e, ok := <-client.Events:
			if !ok {
				return
			}
			writeEvent(c, e)
			c.Writer.Flush()
		case <-heartbeat.C:
			_, _ = c.Writer.WriteString(": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}

func writeEvent(c *gin.Context, e sse.Event) {
	_, _ = c.Writer.WriteString(fmt.Sprintf("event: %s\ndata: %s\n\n", e.EventType, e.Data))
}
