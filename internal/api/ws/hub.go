// Package ws pushes bill status changes to connected dashboards.
package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"billed/internal/models"
)

// Event is the wire payload sent when a bill changes status.
type Event struct {
	BillID string `json:"billId"`
	Status string `json:"status"`
}

// Hub tracks watcher connections and broadcasts status changes.
type Hub struct {
	mu     sync.RWMutex
	conns  map[*Connection]struct{}
	logger *zap.Logger
}

// NewHub builds an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[*Connection]struct{}),
		logger: logger,
	}
}

// Add registers a new watcher connection.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Remove drops a watcher connection.
func (h *Hub) Remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// NotifyStatusChange fans a status change out to every watcher.
func (h *Hub) NotifyStatusChange(bill models.Bill) {
	payload, err := json.Marshal(Event{BillID: bill.ID, Status: bill.Status})
	if err != nil {
		h.logger.Warn("failed to encode status event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.conns {
		conn.Send(payload)
	}
}
