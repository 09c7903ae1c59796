// server/internal/socket/hub.go
package socket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks every connected dashboard by username and pushes notification
// payloads to them. It satisfies store.NotificationSink.
type Hub struct {
	// clients maps username -> live connection. One connection per user;
	// a newer login replaces the previous one.
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection.
func (h *Hub) Register(username string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[username] = conn
	log.Printf("WebSocket client registered: %s", username)
}

// Unregister removes a client connection.
func (h *Hub) Unregister(username string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[username]; ok {
		delete(h.clients, username)
		log.Printf("WebSocket client unregistered: %s", username)
	}
}

// Send pushes a message to one user. An offline user is not an error.
func (h *Hub) Send(username string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[username]
	if !ok {
		return nil
	}

	return conn.WriteMessage(websocket.TextMessage, message)
}
