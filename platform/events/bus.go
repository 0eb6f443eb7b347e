package events

import (
	"context"
	"sync"

	"timeless_backend/platform/logger"
)

// InMemoryBus is a simple in-process event bus. Handlers for an event run
// in registration order; Publish detaches them from the caller's goroutine.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all handlers asynchronously. Handler errors
// are logged, never propagated to the publisher.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	handlers := b.handlersFor(event.EventName())
	if len(handlers) == 0 {
		return
	}

	// Detach from the request context so in-flight handlers survive the
	// originating HTTP request.
	go func() {
		for _, h := range handlers {
			b.dispatch(context.WithoutCancel(ctx), event, h)
		}
	}()
}

// PublishSync dispatches the event and waits for all handlers, returning the
// first handler error encountered.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	var firstErr error
	for _, h := range b.handlersFor(event.EventName()) {
		if err := h.Handle(ctx, event); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			b.log.Error("event handler failed", "event", event.EventName(), "error", err)
		}
	}
	return firstErr
}

func (b *InMemoryBus) dispatch(ctx context.Context, event Event, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panic", "event", event.EventName(), "panic", r)
		}
	}()

	if err := h.Handle(ctx, event); err != nil {
		b.log.Error("event handler failed", "event", event.EventName(), "error", err)
	}
}

func (b *InMemoryBus) handlersFor(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	registered := b.handlers[eventName]
	out := make([]Handler, len(registered))
	copy(out, registered)
	return out
}
