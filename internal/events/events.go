// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"timeless_backend/platform/events"
	"timeless_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Orders Domain Events
// =============================================================================

// OrderCreated is published after an order and its line items are persisted
// and the shopper's cart has been cleared.
type OrderCreated struct {
	BaseEvent
	OrderID      uuid.UUID `json:"orderId"`
	DisplayCode  string    `json:"displayCode"`
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone"`
	Wilaya       string    `json:"wilaya"`
	Commune      string    `json:"commune"`
	TotalDZD     int64     `json:"totalDzd"`
	ItemCount    int       `json:"itemCount"`
}

func (e OrderCreated) EventName() string { return "orders.created" }

// OrderStatusChanged is published when an admin advances an order's status.
type OrderStatusChanged struct {
	BaseEvent
	OrderID   uuid.UUID `json:"orderId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	ChangedBy uuid.UUID `json:"changedBy"`
}

func (e OrderStatusChanged) EventName() string { return "orders.status.changed" }
