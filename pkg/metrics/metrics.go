package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Query engine metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_queries_total",
			Help: "Total number of engine queries by name",
		},
		[]string{"query", "status"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_query_duration_seconds",
			Help:    "Engine query duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"query"},
	)

	// Recompute cycle outcomes: ok, validation, empty, error
	CyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cycles_total",
			Help: "Total number of recompute cycles by outcome",
		},
		[]string{"outcome"},
	)
)

// Cycle outcomes
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeEmpty      = "empty"
	OutcomeError      = "error"
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordQuery records one engine query
func RecordQuery(query string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	QueriesTotal.WithLabelValues(query, status).Inc()
	QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// RecordCycle records the outcome of a recompute cycle
func RecordCycle(outcome string) {
	CyclesTotal.WithLabelValues(outcome).Inc()
}
