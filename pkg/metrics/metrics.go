// Package metrics defines the collector the ledger reports to.
package metrics

import (
	"time"

	"github.com/amirasaad/fxledger/pkg/money"
)

// Transfer outcomes
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Collector defines the interface for collecting ledger metrics.
// Implementations can export metrics to various backends (Prometheus, StatsD, etc.).
type Collector interface {
	// RecordTransfer records one ExecuteTransfer call and how long it took.
	RecordTransfer(from, to money.Code, outcome string, duration time.Duration)
	// RecordMissingRate records a transfer that found no rate for its pair.
	RecordMissingRate(from, to money.Code)
	// RecordBalance sets the current sum of balances held in code.
	RecordBalance(code money.Code, total float64)
}

// NoOpCollector is a no-op implementation of Collector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordTransfer does nothing.
func (NoOpCollector) RecordTransfer(from, to money.Code, outcome string, duration time.Duration) {}

// RecordMissingRate does nothing.
func (NoOpCollector) RecordMissingRate(from, to money.Code) {}

// RecordBalance does nothing.
func (NoOpCollector) RecordBalance(code money.Code, total float64) {}

var _ Collector = NoOpCollector{}
