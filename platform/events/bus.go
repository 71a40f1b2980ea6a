// Package events provides event bus infrastructure.
package events

import (
	"context"
	"sync"
	"time"

	"mediagent_backend/platform/logger"
)

// asyncHandlerTimeout bounds handler execution when publishing asynchronously
// so a stuck handler cannot leak goroutines forever.
const asyncHandlerTimeout = 30 * time.Second

// InMemoryBus is a simple in-process event bus. Handlers registered for an
// event name receive every published event of that name. Publish dispatches
// handlers on their own goroutines; PublishSync runs them inline and returns
// the first error encountered.
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

// Subscribe registers a handler for a specific event type.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all registered handlers asynchronously.
// Handler errors are logged, not propagated.
func (b *InMemoryBus) Publish(_ context.Context, event Event) {
	if event == nil {
		return
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil && b.log != nil {
					b.log.Error("event handler panic", "event", event.EventName(), "panic", r)
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), asyncHandlerTimeout)
			defer cancel()

			if err := h.Handle(ctx, event); err != nil && b.log != nil {
				b.log.Error("event handler failed", "event", event.EventName(), "error", err)
			}
		}(handler)
	}
}

// PublishSync dispatches the event to all registered handlers inline and
// returns the first handler error.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	if event == nil {
		return nil
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			return err
		}
	}

	return nil
}
