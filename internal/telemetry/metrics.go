package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Failures        *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "novaposhta_requests_total",
				Help: "Total number of carrier operations by operation and status",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "novaposhta_request_duration_seconds",
				Help:    "Carrier operation duration in seconds by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Failures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "novaposhta_failures_total",
				Help: "Total failed carrier operations by operation and status code",
			},
			[]string{"operation", "status"},
		),
	}
}

// ObserveCall records one finished carrier operation. It satisfies the
// client's Recorder interface.
func (m *Metrics) ObserveCall(operation, status string, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if status != "ok" {
		m.Failures.WithLabelValues(operation, status).Inc()
	}
}
