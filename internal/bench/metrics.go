package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job outcome label values.
const (
	outcomeExecuted  = "executed"
	outcomeDiscarded = "discarded"
	outcomeLate      = "late"
)

// Metrics exposes run counters to Prometheus. The zero registerer keeps the
// collectors unregistered, which is what tests and one-off runs use.
type Metrics struct {
	jobs           *prometheus.CounterVec
	cellsExhausted prometheus.Counter
	pending        prometheus.Gauge
	trialDuration  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		jobs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortbench",
			Name:      "jobs_total",
			Help:      "Jobs leaving the stack, by outcome",
		}, []string{"outcome"}),
		cellsExhausted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sortbench",
			Name:      "cells_exhausted_total",
			Help:      "Algorithm/size cells that used up their time budget",
		}),
		pending: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "sortbench",
			Name:      "jobs_pending",
			Help:      "Jobs still on the stack",
		}),
		trialDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sortbench",
			Name:      "trial_duration_seconds",
			Help:      "Wall-clock time of a single sort call",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"class"}),
	}
}

func (m *Metrics) observeTrial(class string, d time.Duration) {
	m.trialDuration.WithLabelValues(class).Observe(d.Seconds())
}
