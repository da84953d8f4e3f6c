package ws

import (
	"log/slog"
	"sync"

	"deskline/protocol"
)

// Hub tracks live connections by id and implements the engine's Pusher
// contract. Push is fire and forget: a missing connection or a full
// send queue drops the envelope silently, exactly like pushing to a
// socket that already closed.
type Hub struct {
	mu      sync.RWMutex
	log     *slog.Logger
	clients map[string]*client
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[string]*client),
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		c.close()
		delete(h.clients, id)
	}
}

// Len reports the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Push implements contract.Pusher.
func (h *Hub) Push(connID string, env protocol.Envelope) {
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()

	if !ok {
		h.log.Debug("push to unknown connection dropped", "conn_id", connID)
		return
	}

	select {
	case c.send <- env:
	default:
		h.log.Warn("send queue full, envelope dropped",
			"conn_id", connID, "action", string(env.Action))
	}
}
