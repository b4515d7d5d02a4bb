package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/sse"
	"github.com/shashiranjanraj/storefront/pkg/ws"
)

// FeedController pushes checkout receipts to connected admin dashboards,
// over WebSocket or SSE. Both feeds are fed by the order.placed event.
type FeedController struct {
	hub *ws.Hub

	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func NewFeedController() *FeedController {
	return &FeedController{
		hub:  ws.NewHub(),
		subs: make(map[chan []byte]struct{}),
	}
}

// Start runs the hub loop and hooks the feed into checkout events.
// Call once at boot.
func (c *FeedController) Start() {
	go c.hub.Run()

	event.Listen(services.OrderPlacedEvent, func(payload interface{}) {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error("feed: marshal receipt", "error", err)
			return
		}

		c.hub.Broadcast <- data

		c.mu.Lock()
		for sub := range c.subs {
			select {
			case sub <- data:
			default: // slow consumer, drop
			}
		}
		c.mu.Unlock()
	})
}

// Socket upgrades the connection and streams receipts over WebSocket.
func (c *FeedController) Socket(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, c.hub)
}

// Stream sends receipts as server-sent events until the client goes away.
func (c *FeedController) Stream(w http.ResponseWriter, r *http.Request) {
	stream := sse.New(w, r)
	if stream == nil {
		return
	}
	stream.Comment("order feed connected")

	sub := make(chan []byte, 16)
	c.mu.Lock()
	c.subs[sub] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.subs, sub)
		c.mu.Unlock()
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case data := <-sub:
			if err := stream.Send(services.OrderPlacedEvent, json.RawMessage(data)); err != nil || stream.IsClosed() {
				return
			}
		}
	}
}
