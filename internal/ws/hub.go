package ws

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is a live update pushed to a connected client. It replaces the
// document store's live-query snapshots: every notification or chat write
// fans out as one of these.
type Event struct {
	Type string      `json:"type"` // "notification", "message", "chat", "status"
	Data interface{} `json:"data"`
}

// Conn is the slice of *websocket.Conn the hub needs.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub tracks one or more WebSocket connections per user id.
type Hub struct {
	mu      sync.Mutex
	clients map[string][]Conn
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string][]Conn)}
}

// Register adds a connection for the user and announces them online.
func (h *Hub) Register(userID string, conn Conn) {
	h.mu.Lock()
	h.clients[userID] = append(h.clients[userID], conn)
	h.mu.Unlock()
	h.broadcastStatus(userID, "online")
}

// Unregister removes a connection; when it was the user's last one they are
// announced offline. A connection that was never registered (or already
// removed) is a no-op.
func (h *Hub) Unregister(userID string, conn Conn) {
	h.mu.Lock()
	conns := h.clients[userID]
	found := false
	for i, c := range conns {
		if c == conn {
			conns = append(conns[:i], conns[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		h.mu.Unlock()
		return
	}
	if len(conns) == 0 {
		delete(h.clients, userID)
	} else {
		h.clients[userID] = conns
	}
	wentOffline := len(conns) == 0
	h.mu.Unlock()

	conn.Close()
	if wentOffline {
		h.broadcastStatus(userID, "offline")
	}
}

// SendToUser pushes an event to every connection the user has open. A user
// with no connections is not an error; they will see the data on next fetch.
func (h *Hub) SendToUser(userID string, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conn := range h.clients[userID] {
		if err := conn.WriteJSON(ev); err != nil {
			logrus.WithError(err).WithField("userID", userID).Warn("Failed to write ws event")
		}
	}
}

// IsOnline reports whether the user has at least one open connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) broadcastStatus(userID, status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for _, conn := range conns {
			conn.WriteJSON(Event{Type: "status", Data: map[string]string{
				"user_id": userID,
				"status":  status,
			}})
		}
	}
}
