package socket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"traffic-sim-registration-api-server/internal/sink"
)

// Hub tracks the websocket connection of each form session so that toasts
// can be pushed to the client that owns the session.
type Hub struct {
	// clients maps session ID to connection.
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection for a session. A reconnect replaces the
// old connection.
func (h *Hub) Register(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[sessionID] = conn
	slog.Info("websocket client registered", "sessionID", sessionID)
}

// Unregister removes a client connection.
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[sessionID]; ok {
		delete(h.clients, sessionID)
		slog.Info("websocket client unregistered", "sessionID", sessionID)
	}
}

// Send writes a text message to one session's connection. A missing client
// (page not connected) is not treated as an error.
func (h *Hub) Send(sessionID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[sessionID]
	if !ok {
		slog.Debug("websocket client not found, message dropped", "sessionID", sessionID)
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Notify implements sink.Notifier by pushing the toast as JSON.
func (h *Hub) Notify(sessionID string, n sink.Notification) {
	message, err := json.Marshal(n)
	if err != nil {
		slog.Error("failed to marshal notification", "error", err)
		return
	}
	if err := h.Send(sessionID, message); err != nil {
		slog.Warn("failed to push notification", "sessionID", sessionID, "error", err)
	}
}
