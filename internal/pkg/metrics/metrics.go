// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the application collectors.
type Metrics struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	importedRows   *prometheus.CounterVec
	importFailures *prometheus.CounterVec
	tokensPruned   prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lppm_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lppm_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		importedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lppm_import_rows_total",
			Help: "Spreadsheet rows persisted by successful imports.",
		}, []string{"entity"}),
		importFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lppm_import_failures_total",
			Help: "Spreadsheet imports rejected or rolled back.",
		}, []string{"entity"}),
		tokensPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lppm_access_tokens_pruned_total",
			Help: "Expired or revoked access tokens removed by the cleanup job.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.importedRows, m.importFailures, m.tokensPruned)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ImportSucceeded records rows persisted by an import.
func (m *Metrics) ImportSucceeded(entity string, rows int) {
	m.importedRows.WithLabelValues(entity).Add(float64(rows))
}

// ImportFailed records a rejected import.
func (m *Metrics) ImportFailed(entity string) {
	m.importFailures.WithLabelValues(entity).Inc()
}

// TokensPruned records tokens removed by the cleanup job.
func (m *Metrics) TokensPruned(n int64) {
	m.tokensPruned.Add(float64(n))
}
