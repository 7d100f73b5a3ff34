// Package observability provides prometheus metrics for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// HomepageFilterLatency records the latency of the in-memory homepage
	// keyword filter, labeled by whether a filter string was supplied.
	HomepageFilterLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_homepage_filter_latency_seconds",
		Help:    "Latency of homepage candidate filtering in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"filtered"})

	// SegmentsPublished counts published segments, labeled by whether the
	// segment was a story root and whether it came through the draft pipeline.
	SegmentsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_segments_published_total",
		Help: "Total number of published story segments",
	}, []string{"root", "from_draft"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
