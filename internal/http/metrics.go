package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"medassist/pkg"
)

// PromMetrics implements core.Metrics on a Prometheus registry.
type PromMetrics struct {
	consultations *prometheus.CounterVec
	retries       prometheus.Counter
	duration      prometheus.Histogram
}

// NewPromMetrics registers the consultation metrics on the default
// registry.  Call once per process.
func NewPromMetrics() *PromMetrics {
	m := &PromMetrics{
		consultations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medassist_consultations_total",
				Help: "Consultations by terminal outcome.",
			},
			[]string{"outcome"},
		),
		retries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "medassist_backend_retries_total",
				Help: "Reasoning backend retries.",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "medassist_consultation_duration_seconds",
				Help:    "End-to-end consultation duration.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	prometheus.MustRegister(m.consultations, m.retries, m.duration)
	return m
}

func (m *PromMetrics) ConsultationDone(kind pkg.ResultKind, elapsed time.Duration) {
	m.consultations.WithLabelValues(string(kind)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *PromMetrics) BackendRetry() { m.retries.Inc() }
