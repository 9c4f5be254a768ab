package eventbus

import (
	"context"

	"github.com/amirasaad/fxledger/pkg/domain/events"
)

// HandlerFunc handles a single event.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
