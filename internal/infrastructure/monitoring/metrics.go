// Package monitoring provides Prometheus metrics for the explorer backend.
//
// Tracks HTTP traffic plus the lifecycle of background operations: how many
// were started, how they terminated, and how many filesystem items the
// workers processed.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Operation metrics
	OperationsStarted  *prometheus.CounterVec
	OperationsFinished *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
	ItemsProcessed     prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "explorer_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		OperationsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_operations_started_total",
			Help: "Background operations dispatched",
		}, []string{"type"}),
		OperationsFinished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_operations_finished_total",
			Help: "Background operations reaching a terminal state",
		}, []string{"type", "status"}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "explorer_operation_duration_seconds",
			Help:    "Background operation wall time",
			Buckets: []float64{.1, .5, 1, 5, 15, 60, 300, 1800},
		}, []string{"type"}),
		ItemsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "explorer_items_processed_total",
			Help: "Filesystem items visited or transferred by workers",
		}),
		Uptime: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "explorer_uptime_seconds",
			Help: "Process uptime",
		}),
		startTime: time.Now(),
	}
	return m
}

// RecordHTTPRequest records metrics for one HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOperationStarted records a dispatched background operation
func (m *Metrics) RecordOperationStarted(opType string) {
	m.OperationsStarted.WithLabelValues(opType).Inc()
}

// RecordOperationFinished records a terminal transition
func (m *Metrics) RecordOperationFinished(opType, status string, duration time.Duration) {
	m.OperationsFinished.WithLabelValues(opType, status).Inc()
	m.OperationDuration.WithLabelValues(opType).Observe(duration.Seconds())
}

// AddItemsProcessed adds to the worker item counter
func (m *Metrics) AddItemsProcessed(n int) {
	m.ItemsProcessed.Add(float64(n))
}

// UpdateUptime refreshes the uptime gauge
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}
