package websocket

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/Xyon15/Hardware-Monitor/internal/config"
	"github.com/Xyon15/Hardware-Monitor/internal/logger"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHandler(hub *Hub, cfg *config.Config, log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Native clients send no Origin header.
				return true
			}

			if slices.Contains(cfg.AllowedOrigins, origin) {
				return true
			}

			log.Warn("ws: origin rejected", "origin", origin)
			return false
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		log:      log,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.log.Info("ws: client connected", "remote_addr", conn.RemoteAddr())
}
