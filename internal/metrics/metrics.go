// Package metrics exposes Prometheus instruments for backend calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for a backend call.
const (
	StatusTranslated  = "translated"
	StatusUnsupported = "unsupported"
	StatusError       = "error"
)

var (
	translationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradcompare_translation_requests_total",
			Help: "Total number of backend translation calls",
		},
		[]string{"backend", "status"},
	)

	translationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradcompare_translation_duration_seconds",
			Help:    "Wall-clock duration of backend translation calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"backend", "status"},
	)

	comparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradcompare_comparisons_total",
			Help: "Total number of comparison runs",
		},
		[]string{"outcome"},
	)
)

// RecordTranslation counts one backend call and observes its duration.
func RecordTranslation(backend, status string, elapsed time.Duration) {
	translationRequestsTotal.WithLabelValues(backend, status).Inc()
	translationDuration.WithLabelValues(backend, status).Observe(elapsed.Seconds())
}

// RecordComparison counts a finished run; outcome is "ok" or "aborted".
func RecordComparison(outcome string) {
	comparisonsTotal.WithLabelValues(outcome).Inc()
}
