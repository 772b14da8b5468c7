// Package metrics exposes Prometheus instrumentation for smart-split.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SettlementComputations counts settlement plans computed, labeled by
	// outcome ("ok" or "error").
	SettlementComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartsplit_settlement_computations_total",
		Help: "Number of settlement plan computations.",
	}, []string{"outcome"})

	// SettlementTransactions observes how many transactions each computed
	// plan contains.
	SettlementTransactions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartsplit_settlement_plan_transactions",
		Help:    "Transactions per computed settlement plan.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	// SettlementDuration observes end-to-end computation time, storage reads
	// included.
	SettlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartsplit_settlement_compute_seconds",
		Help:    "Duration of settlement plan computations.",
		Buckets: prometheus.DefBuckets,
	})

	// InvariantWarnings counts data-integrity warnings surfaced by the
	// calculator, labeled by warning code.
	InvariantWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartsplit_calculator_warnings_total",
		Help: "Calculator data-integrity warnings by code.",
	}, []string{"code"})
)

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
