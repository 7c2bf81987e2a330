// Package metrics exposes the Prometheus collectors shared by the HTTP layer
// and the conversion services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erd_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "erd_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "erd_http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "endpoint"},
	)

	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erd_conversions_total",
			Help: "Total number of conversions by operation and outcome",
		},
		[]string{"operation", "status"},
	)
	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "erd_conversion_duration_seconds",
			Help:    "Conversion time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	TablesParsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "erd_tables_parsed_total",
			Help: "Total number of tables extracted from DDL",
		},
	)
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "erd_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// RecordConversion records one conversion outcome. A nil err counts as success.
func RecordConversion(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ConversionsTotal.WithLabelValues(operation, status).Inc()
	ConversionDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
