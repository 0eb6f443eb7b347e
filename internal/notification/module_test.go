package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"timeless_backend/internal/events"
	"timeless_backend/internal/scheduler"
	"timeless_backend/platform/logger"
)

type fakeEnqueuer struct {
	payloads []scheduler.OrderWhatsAppPayload
}

func (f *fakeEnqueuer) EnqueueOrderWhatsApp(_ context.Context, payload scheduler.OrderWhatsAppPayload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func orderCreatedEvent() events.OrderCreated {
	return events.OrderCreated{
		BaseEvent:    events.NewBaseEvent(),
		OrderID:      uuid.New(),
		DisplayCode:  "#ORD-2026-0042",
		CustomerName: "Amine Benali",
		Phone:        "+213555123456",
		Wilaya:       "Alger",
		Commune:      "Hydra",
		TotalDZD:     900000,
		ItemCount:    2,
	}
}

func TestOrderCreatedEnqueuesNotification(t *testing.T) {
	enq := &fakeEnqueuer{}
	m := NewModule(enq, logger.New("development"))
	bus := events.NewInMemoryBus(logger.New("development"))
	m.Subscribe(bus)

	event := orderCreatedEvent()
	if err := bus.PublishSync(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(enq.payloads) != 1 {
		t.Fatalf("expected 1 queued notification, got %d", len(enq.payloads))
	}

	payload := enq.payloads[0]
	if payload.OrderID != event.OrderID.String() || payload.DisplayCode != event.DisplayCode {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	for _, fragment := range []string{"#ORD-2026-0042", "Amine Benali", "Alger, Hydra", "900000 DZD"} {
		if !strings.Contains(payload.Message, fragment) {
			t.Fatalf("message missing %q: %s", fragment, payload.Message)
		}
	}
}

func TestOrderCreatedWithoutQueueIsLoggedOnly(t *testing.T) {
	m := NewModule(nil, logger.New("development"))
	bus := events.NewInMemoryBus(logger.New("development"))
	m.Subscribe(bus)

	if err := bus.PublishSync(context.Background(), orderCreatedEvent()); err != nil {
		t.Fatalf("publish without queue must not fail: %v", err)
	}
}

func TestTypedNilClientTreatedAsNoQueue(t *testing.T) {
	m := NewModule((*scheduler.Client)(nil), logger.New("development"))
	if m.enqueuer != nil {
		t.Fatalf("expected typed-nil queue client to be normalized to no queue")
	}

	bus := events.NewInMemoryBus(logger.New("development"))
	m.Subscribe(bus)
	if err := bus.PublishSync(context.Background(), orderCreatedEvent()); err != nil {
		t.Fatalf("publish with typed-nil queue client must not fail: %v", err)
	}
}
