// Package server exposes the router over a WebSocket so a browser canvas can
// request connector routes while the user drags shapes around.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"gridroute/pathfinding"
)

// ErrMissingRequest is reported for a route message without a request.
var ErrMissingRequest = errors.New("server: route message has no request")

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Logger *log.Logger
	// Options are applied to every route request.
	Options []pathfinding.Option
}

// Handler answers route messages on a WebSocket connection. Each connection
// is served by its own goroutine; messages on one connection are answered
// in order.
type Handler struct {
	router   *pathfinding.CachedRouter
	opts     []pathfinding.Option
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a handler routing through router.
func NewHandler(router *pathfinding.CachedRouter, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return &Handler{
		router:   router,
		opts:     cfg.Options,
		logger:   logger,
		upgrader: upgrader,
	}
}

// Handle upgrades the request and serves route messages until the client
// disconnects.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Printf("read failed for %s: %v", r.RemoteAddr, err)
			}
			return
		}

		reply := h.reply(r.RemoteAddr, payload)
		data, err := json.Marshal(reply)
		if err != nil {
			h.logger.Printf("failed to marshal response for %s: %v", r.RemoteAddr, err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Printf("write failed for %s: %v", r.RemoteAddr, err)
			return
		}
	}
}

// reply builds the answer to one client message.
func (h *Handler) reply(remote string, payload []byte) any {
	var msg clientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.logger.Printf("malformed message from %s: %v", remote, err)
		return errorMessage{Type: TypeError, Error: err.Error()}
	}

	switch msg.Type {
	case TypeRoute:
		if msg.Request == nil {
			return errorMessage{Type: TypeError, ID: msg.ID, Error: ErrMissingRequest.Error()}
		}
		result, err := h.router.Route(*msg.Request, h.opts...)
		if err != nil {
			return errorMessage{Type: TypeError, ID: msg.ID, Error: err.Error()}
		}
		return pathMessage{
			Type:     TypePath,
			ID:       msg.ID,
			Points:   result.Points,
			Found:    result.Found,
			Expanded: result.Expanded,
		}
	default:
		return errorMessage{Type: TypeError, ID: msg.ID, Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
}
