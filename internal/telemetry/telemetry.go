package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for the RAG pipeline.
type Metrics struct {
	TurnsTotal        *prometheus.CounterVec
	TurnDuration      prometheus.Histogram
	ProviderErrors    *prometheus.CounterVec
	WebSearchDegraded prometheus.Counter
}

// NewMetrics creates and registers the collectors on the given registerer.
// Tests pass a fresh registry; the server passes the default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TurnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sahayak_turns_total",
			Help: "Completed chat turns by response type and outcome.",
		}, []string{"type", "outcome"}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sahayak_turn_duration_seconds",
			Help:    "End-to-end chat turn latency.",
			Buckets: prometheus.DefBuckets,
		}),
		ProviderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sahayak_provider_errors_total",
			Help: "Generative/embedding provider failures by operation.",
		}, []string{"op"}),
		WebSearchDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sahayak_web_search_degraded_total",
			Help: "Web searches that fell back to the unavailable sentinel.",
		}),
	}
	reg.MustRegister(m.TurnsTotal, m.TurnDuration, m.ProviderErrors, m.WebSearchDegraded)
	return m
}

// ObserveTurn records one finished turn.
func (m *Metrics) ObserveTurn(responseType string, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.TurnsTotal.WithLabelValues(responseType, outcome).Inc()
	m.TurnDuration.Observe(elapsed.Seconds())
}

// ObserveProviderError records a terminal provider failure for an operation.
func (m *Metrics) ObserveProviderError(op string) {
	if m == nil {
		return
	}
	m.ProviderErrors.WithLabelValues(op).Inc()
}
