package sse

import (
	"encoding/json"
	"sync"

	"lemonworks/event"

	"github.com/sirupsen/logrus"
)

// ClientBuffer is the number of events a slow client may lag behind before events are dropped.
const ClientBuffer = 64

type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

type Client struct {
	ID     string
	Events chan Event
}

func NewClient(id string) *Client {
	return &Client{ID: id, Events: make(chan Event, ClientBuffer)}
}

// Hub fans events out to every connected browser.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	logrus.WithField("client", client.ID).WithField("total", len(h.clients)).Debug("sse client registered")
}

// Unregister closes the client's channel. Unknown ids are ignored.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		logrus.WithField("client", clientID).WithField("total", len(h.clients)).Debug("sse client unregistered")
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast never blocks: a client whose buffer is full misses the event.
func (h *Hub) Broadcast(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- e:
		default:
			logrus.WithField("client", client.ID).Warn("sse client buffer full, skipping event")
		}
	}
}

func (h *Hub) BroadcastJSON(eventType string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(Event{EventType: eventType, Data: string(data)})
	return nil
}

// Forward adapts the hub to an event bus: each record triggers a broadcast of render().
func (h *Hub) Forward(eventType string, render func() interface{}) event.EventHandler {
	return func(record *event.EventRecord) *event.EventHandleResult {
		if h.Len() == 0 {
			return nil
		}
		if err := h.BroadcastJSON(eventType, render()); err != nil {
			logrus.WithError(err).Error("error encoding sse event")
			return &event.EventHandleResult{Success: false, Message: err.Error()}
		}
		return nil
	}
}
