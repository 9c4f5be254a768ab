package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/fxledger/pkg/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *MemoryEventBus {
	return NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)), WithHistory())
}

func TestMemoryEventBus_DispatchesByType(t *testing.T) {
	t.Parallel()
	bus := newTestBus()

	var completed, rejected int
	bus.Register(events.EventTypeTransferCompleted, func(ctx context.Context, e events.Event) error {
		completed++
		return nil
	})
	bus.Register(events.EventTypeTransferRejected, func(ctx context.Context, e events.Event) error {
		rejected++
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), events.TransferCompleted{}))
	require.NoError(t, bus.Emit(context.Background(), events.TransferCompleted{}))
	require.NoError(t, bus.Emit(context.Background(), events.TransferRejected{Reason: "nope"}))

	assert.Equal(t, 2, completed)
	assert.Equal(t, 1, rejected)
	assert.Len(t, bus.Published(), 3)
}

func TestMemoryEventBus_HandlerFailuresAreContained(t *testing.T) {
	t.Parallel()
	bus := newTestBus()

	var reached bool
	bus.Register(events.EventTypeTransferFailed, func(ctx context.Context, e events.Event) error {
		return errors.New("handler failed")
	})
	bus.Register(events.EventTypeTransferFailed, func(ctx context.Context, e events.Event) error {
		panic("boom")
	})
	bus.Register(events.EventTypeTransferFailed, func(ctx context.Context, e events.Event) error {
		reached = true
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), events.TransferFailed{Reason: "missing rate"}))
	assert.True(t, reached)
}

func TestMemoryEventBus_ClearPublished(t *testing.T) {
	t.Parallel()
	bus := newTestBus()
	require.NoError(t, bus.Emit(context.Background(), events.TransferCompleted{}))

	published := bus.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTypeTransferCompleted, published[0].Type())

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
	assert.Len(t, published, 1)
}

func TestMemoryEventBus_NoHistoryByDefault(t *testing.T) {
	t.Parallel()
	bus := NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var handled int
	bus.Register(events.EventTypeTransferRejected, func(ctx context.Context, e events.Event) error {
		handled++
		return nil
	})
	for range 100 {
		require.NoError(t, bus.Emit(context.Background(), events.TransferRejected{Reason: "insufficient"}))
	}

	assert.Equal(t, 100, handled)
	assert.Empty(t, bus.Published())
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	assert.Nil(t, bus.published)
}
