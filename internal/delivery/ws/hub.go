package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub maintains per-consultation broadcast groups and the process-wide
// presence counters. It is initialized at process start and torn down on
// shutdown; scaling it out would require moving presence to a shared store.
type Hub struct {
	log *logrus.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
	// groups maps consultation id -> subscribed clients
	groups map[uuid.UUID]map[*Client]struct{}
	// presence counts open connections per user id
	presence map[uuid.UUID]int
	closed   bool
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:      log,
		clients:  make(map[*Client]struct{}),
		groups:   make(map[uuid.UUID]map[*Client]struct{}),
		presence: make(map[uuid.UUID]int),
	}
}

// Stop closes every connection and rejects further registrations.
func (h *Hub) Stop() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// IsOnline reports whether the user has at least one open connection.
// Used to skip push delivery for users already looking at the app.
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.presence[userID] > 0
}

// BroadcastMessage pushes a message event to everyone subscribed to the
// consultation's group. Slow consumers are skipped rather than awaited.
func (h *Hub) BroadcastMessage(consultationID uuid.UUID, event interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"event": "message",
		"data":  event,
	})
	if err != nil {
		h.log.Warnf("Failed to marshal broadcast payload: %+v", err)
		return
	}

	h.mu.RLock()
	group := h.groups[consultationID]
	targets := make([]*Client, 0, len(group))
	for c := range group {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- payload:
		default:
			h.log.Warnf("Dropping realtime event for slow client (user %s)", c.userID)
		}
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.presence[c.userID]++
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for id := range c.joined {
		h.leaveLocked(c, id)
	}
	h.presence[c.userID]--
	if h.presence[c.userID] <= 0 {
		delete(h.presence, c.userID)
	}
}

func (h *Hub) join(c *Client, consultationID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group, ok := h.groups[consultationID]
	if !ok {
		group = make(map[*Client]struct{})
		h.groups[consultationID] = group
	}
	group[c] = struct{}{}
	c.joined[consultationID] = struct{}{}
}

func (h *Hub) leave(c *Client, consultationID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, consultationID)
}

func (h *Hub) leaveLocked(c *Client, consultationID uuid.UUID) {
	if group, ok := h.groups[consultationID]; ok {
		delete(group, c)
		if len(group) == 0 {
			delete(h.groups, consultationID)
		}
	}
	delete(c.joined, consultationID)
}
