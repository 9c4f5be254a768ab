// Package initializer builds the ledger's infrastructure from configuration.
package initializer

import (
	"fmt"
	"log/slog"

	infra_eventbus "github.com/amirasaad/fxledger/infra/eventbus"
	infra_repository "github.com/amirasaad/fxledger/infra/repository"
	accountfixtures "github.com/amirasaad/fxledger/internal/fixtures/accounts"
	"github.com/amirasaad/fxledger/pkg/config"
	"github.com/amirasaad/fxledger/pkg/currency"
	"github.com/amirasaad/fxledger/pkg/metrics"
	promcollector "github.com/amirasaad/fxledger/pkg/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (*config.Deps, error) {
	return initialize(cfg, SetupLogger(cfg.Log))
}

func initialize(cfg *config.App, logger *slog.Logger) (deps *config.Deps, err error) {
	deps = &config.Deps{Logger: logger, Config: cfg}

	// Load the starting accounts
	seedFile := ""
	if cfg.Ledger != nil {
		seedFile = cfg.Ledger.SeedFile
	}
	accounts, err := accountfixtures.LoadAccountsCSV(seedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load account seed: %w", err)
	}
	logger.Info("Loaded account seed", "source", seedSource(seedFile), "accounts", len(accounts))

	store, err := infra_repository.NewStore(accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize account store: %w", err)
	}
	deps.Uow = infra_repository.NewUoW(store)

	deps.RateTable = currency.DefaultRateTable()
	for _, r := range deps.RateTable.Rates() {
		logger.Debug("Exchange rate", "pair", currency.Pair{From: r.From, To: r.To}.String(), "rate", r.Rate)
	}

	deps.EventBus = infra_eventbus.NewWithMemory(logger)

	deps.Metrics = metrics.NoOpCollector{}
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector := promcollector.NewCollector(cfg.Metrics.Namespace)
		if err := collector.Register(registry); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		deps.Metrics = collector
		deps.MetricsGatherer = registry
	}

	return deps, nil
}

func seedSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
