package config

import (
	"log/slog"

	"github.com/amirasaad/fxledger/pkg/currency"
	"github.com/amirasaad/fxledger/pkg/eventbus"
	"github.com/amirasaad/fxledger/pkg/metrics"
	"github.com/amirasaad/fxledger/pkg/repository"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Uow       repository.UnitOfWork
	RateTable *currency.RateTable
	EventBus  eventbus.Bus
	Metrics   metrics.Collector
	Logger    *slog.Logger
	Config    *App

	// MetricsGatherer is nil when metrics are disabled.
	MetricsGatherer prometheus.Gatherer
}
