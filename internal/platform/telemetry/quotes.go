package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for quote metrics.
const (
	OutcomeSuccess   = "success"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
	OutcomeStale     = "stale"
	OutcomeRejected  = "rejected"
)

// QuoteMetrics counts generations and saves for /-/metrics.
type QuoteMetrics struct {
	generations *prometheus.CounterVec
	saves       *prometheus.CounterVec
	latency     prometheus.Histogram
}

// NewQuoteMetrics registers the quote collectors on reg.
func NewQuoteMetrics(reg prometheus.Registerer) (*QuoteMetrics, error) {
	m := &QuoteMetrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inspire_quotes",
			Name:      "generations_total",
			Help:      "Quote generations by outcome.",
		}, []string{"outcome"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inspire_quotes",
			Name:      "saves_total",
			Help:      "Quote saves by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "inspire_quotes",
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting on the generative endpoint.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.generations, m.saves, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveGeneration records one finished generation. Nil receivers are no-ops.
func (m *QuoteMetrics) ObserveGeneration(outcome string, took time.Duration) {
	if m == nil {
		return
	}

	m.generations.WithLabelValues(outcome).Inc()
	m.latency.Observe(took.Seconds())
}

// ObserveSave records one save attempt.
func (m *QuoteMetrics) ObserveSave(outcome string) {
	if m == nil {
		return
	}

	m.saves.WithLabelValues(outcome).Inc()
}
