// Package prometheus exports ledger metrics to Prometheus.
package prometheus

import (
	"time"

	"github.com/amirasaad/fxledger/pkg/metrics"
	"github.com/amirasaad/fxledger/pkg/money"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements metrics.Collector for Prometheus.
type Collector struct {
	transfers       *prometheus.CounterVec
	transferLatency *prometheus.HistogramVec
	missingRates    *prometheus.CounterVec
	balances        *prometheus.GaugeVec
}

var _ metrics.Collector = (*Collector)(nil)

// NewCollector creates a new Prometheus metrics collector.
func NewCollector(namespace string) *Collector {
	return &Collector{
		transfers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfers_total",
				Help:      "Total number of transfer requests per currency pair and outcome",
			},
			[]string{"from", "to", "outcome"},
		),
		transferLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transfer_duration_seconds",
				Help:      "Transfer execution latency",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 15), // 10µs to ~160ms
			},
			[]string{"outcome"},
		),
		missingRates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "missing_rate_total",
				Help:      "Total number of transfers that found no exchange rate for their pair",
			},
			[]string{"from", "to"},
		),
		balances: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "balance_total",
				Help:      "Sum of all account balances per currency",
			},
			[]string{"currency"},
		),
	}
}

// Register registers all metrics with the given Prometheus registry.
func (c *Collector) Register(registry prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.transfers,
		c.transferLatency,
		c.missingRates,
		c.balances,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordTransfer records a transfer outcome and its latency.
func (c *Collector) RecordTransfer(from, to money.Code, outcome string, duration time.Duration) {
	c.transfers.WithLabelValues(string(from), string(to), outcome).Inc()
	c.transferLatency.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordMissingRate records a lookup miss in the rate table.
func (c *Collector) RecordMissingRate(from, to money.Code) {
	c.missingRates.WithLabelValues(string(from), string(to)).Inc()
}

// RecordBalance sets the per-currency balance gauge.
func (c *Collector) RecordBalance(code money.Code, total float64) {
	c.balances.WithLabelValues(string(code)).Set(total)
}
