// Package metrics holds the Prometheus collectors of the message notifier.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Invocations *prometheus.CounterVec
	Duration    prometheus.Histogram
}

// New registers the notifier collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifier_invocations_total",
				Help: "Total number of message-created invocations, partitioned by outcome.",
			},
			[]string{"outcome"},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "notifier_invocation_duration_seconds",
				Help:    "Duration of message-created invocations.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Observe is a no-op on a nil receiver.
func (m *Metrics) Observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Invocations.WithLabelValues(outcome).Inc()
	m.Duration.Observe(elapsed.Seconds())
}
