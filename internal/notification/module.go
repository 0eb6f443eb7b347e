// Package notification bridges domain events to outbound channels: a new
// order is queued for WhatsApp delivery to the shop. Without a task queue the
// hand-off is logged and dropped, never blocking checkout.
package notification

import (
	"context"
	"fmt"

	"timeless_backend/internal/events"
	"timeless_backend/internal/scheduler"
	"timeless_backend/platform/logger"
)

// TaskEnqueuer queues order notifications. Implemented by scheduler.Client;
// a nil enqueuer means no queue is configured.
type TaskEnqueuer interface {
	EnqueueOrderWhatsApp(ctx context.Context, payload scheduler.OrderWhatsAppPayload) error
}

// Module subscribes to order events and fans them out.
type Module struct {
	enqueuer TaskEnqueuer
	log      *logger.Logger
}

// NewModule creates the notification module. enqueuer may be nil. A typed-nil
// *scheduler.Client compares non-nil as an interface, so it is normalized here
// to keep the skip path honest.
func NewModule(enqueuer TaskEnqueuer, log *logger.Logger) *Module {
	if c, ok := enqueuer.(*scheduler.Client); ok && c == nil {
		enqueuer = nil
	}
	return &Module{enqueuer: enqueuer, log: log}
}

// Subscribe registers the module's event handlers on the bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.OrderCreated{}.EventName(), events.HandlerFunc(m.handleOrderCreated))
	bus.Subscribe(events.OrderStatusChanged{}.EventName(), events.HandlerFunc(m.handleOrderStatusChanged))
}

func (m *Module) handleOrderCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(events.OrderCreated)
	if !ok {
		return nil
	}

	payload := scheduler.OrderWhatsAppPayload{
		OrderID:     created.OrderID.String(),
		DisplayCode: created.DisplayCode,
		Message:     composeShopMessage(created),
	}

	if m.enqueuer == nil {
		m.log.Info("order notification skipped, no task queue configured",
			"order_id", payload.OrderID, "display_code", payload.DisplayCode)
		return nil
	}

	if err := m.enqueuer.EnqueueOrderWhatsApp(ctx, payload); err != nil {
		m.log.Error("failed to enqueue order notification",
			"order_id", payload.OrderID, "error", err.Error())
		return err
	}
	return nil
}

func (m *Module) handleOrderStatusChanged(_ context.Context, event events.Event) error {
	changed, ok := event.(events.OrderStatusChanged)
	if !ok {
		return nil
	}

	m.log.OrderEvent("order_status_changed", changed.OrderID.String(), changed.NewStatus)
	return nil
}

// composeShopMessage builds the short summary sent to the shop's WhatsApp.
func composeShopMessage(created events.OrderCreated) string {
	return fmt.Sprintf(
		"New order %s\nCustomer: %s (%s)\nDelivery: %s, %s\nItems: %d\nTotal: %d DZD",
		created.DisplayCode, created.CustomerName, created.Phone,
		created.Wilaya, created.Commune, created.ItemCount, created.TotalDZD)
}
