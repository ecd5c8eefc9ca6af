// Package websocket
package websocket

import (
	"context"
	"encoding/json"

	"github.com/Xyon15/Hardware-Monitor/internal/logger"
)

// Event is the wire envelope pushed to connected display clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan Event

	log logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 100),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "total_clients", len(h.clients))

		case client := <-h.unregister:
			h.drop(client)

		case event := <-h.events:
			h.broadcast(event)

		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
			}
			clear(h.clients)
			return
		}
	}
}

// Emit queues an event for broadcast. Never blocks the producer: when the
// hub is saturated the event is dropped, the next snapshot supersedes it
// anyway.
func (h *Hub) Emit(event string, payload any) {
	select {
	case h.events <- Event{Event: event, Data: payload}:
	default:
		h.log.Warn("ws: event buffer full, dropping", "event", event)
	}
}

func (h *Hub) broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws: failed to marshal event", "error", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			h.log.Warn("ws: client send buffer full, force unregister")
			h.drop(client)
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.log.Info("ws: client unregistered", "total_clients", len(h.clients))
	}
}
