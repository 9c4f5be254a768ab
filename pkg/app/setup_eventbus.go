// Package app assembles the ledger services and wires their event handlers.
package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fxledger/pkg/domain/events"
	"github.com/amirasaad/fxledger/pkg/eventbus"
	"github.com/amirasaad/fxledger/pkg/metrics"
	"github.com/amirasaad/fxledger/pkg/service/ledger"
)

// setupEventBus registers all event handlers with the provided event Bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	collector := a.Deps.Metrics
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	handler := HandleBalanceGauges(a.LedgerService, collector, a.Deps.Logger)
	bus.Register(events.EventTypeTransferCompleted, handler)

	// publish the starting balances before the first transfer
	if err := handler(context.Background(), nil); err != nil && a.Deps.Logger != nil {
		a.Deps.Logger.Warn("failed to publish initial balance totals", "error", err)
	}
}

// HandleBalanceGauges returns a handler that refreshes the per-currency
// balance totals reported to collector.
func HandleBalanceGauges(
	svc *ledger.Service,
	collector metrics.Collector,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("handler", "balance_gauges")
	return func(ctx context.Context, _ events.Event) error {
		totals, err := svc.TotalsByCurrency(ctx)
		if err != nil {
			return err
		}
		for code, total := range totals {
			collector.RecordBalance(code, total.Amount().InexactFloat64())
		}
		logger.Debug("balance totals refreshed", "currencies", len(totals))
		return nil
	}
}
