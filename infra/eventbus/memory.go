// Package eventbus provides the in-process implementations of eventbus.Bus.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/fxledger/pkg/domain/events"
	"github.com/amirasaad/fxledger/pkg/eventbus"
)

// MemoryEventBus is a simple in-memory implementation of the Bus interface.
// Handlers run synchronously on the emitting goroutine, in registration order.
type MemoryEventBus struct {
	handlers  map[string][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	record    bool
	published []events.Event
}

// Option configures a MemoryEventBus.
type Option func(*MemoryEventBus)

// WithHistory keeps every emitted event for Published. The history is
// never trimmed, so it is meant for tests.
func WithHistory() Option {
	return func(b *MemoryEventBus) { b.record = true }
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger, opts ...Option) *MemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &MemoryEventBus{
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
// A failing or panicking handler is logged and does not stop the others;
// the emitter never sees handler errors.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	eventType := event.Type()

	b.mu.Lock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	if b.record {
		b.published = append(b.published, event)
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		b.dispatch(ctx, eventType, event, handler)
	}
	return nil
}

func (b *MemoryEventBus) dispatch(ctx context.Context, eventType string, event events.Event, handler eventbus.HandlerFunc) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic recovered in event handler", "type", eventType, "panic", r)
		}
	}()
	if err := handler(ctx, event); err != nil {
		b.logger.Error("failed to process event", "type", eventType, "error", err)
	}
}

// ClearPublished clears the list of published events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

// Published returns a copy of every event emitted so far, or nil when the
// bus was created without WithHistory.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]events.Event(nil), b.published...)
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)
