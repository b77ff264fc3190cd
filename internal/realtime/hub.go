package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Event types pushed to websocket clients.
const (
	EventItemSet     = "item_set"
	EventItemRemoved = "item_removed"
)

// Event describes a change to one storage unit of a user.
type Event struct {
	Type      string `json:"type"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	UserID    string `json:"userId"`
	Timeout   int64  `json:"timeout,omitempty"`
}

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts events to them.
type Hub struct {
	mu              sync.RWMutex
	userIdToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		userIdToClients: make(map[string]map[Client]struct{}),
	}
}

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = NewHub()
	})
	return hubInstance
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIdToClients[userID]; !ok {
		h.userIdToClients[userID] = make(map[Client]struct{})
	}
	h.userIdToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIdToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIdToClients, userID)
		}
	}
}

// Clients returns how many connections a user currently has.
func (h *Hub) Clients(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userIdToClients[userID])
}

// Broadcast sends a message to all clients of a user and returns how many accepted it.
// Clients whose write fails are cleaned up by their own handler.
func (h *Hub) Broadcast(userID string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for c := range h.userIdToClients[userID] {
		if c.Send(message) {
			delivered++
		}
	}
	return delivered
}

// Publish encodes evt and broadcasts it to the event's user.
func (h *Hub) Publish(evt Event) int {
	msg, err := json.Marshal(evt)
	if err != nil {
		log.Println("realtime: encode event:", err)
		return 0
	}
	return h.Broadcast(evt.UserID, msg)
}
