package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis calls by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})

	// CacheLookups counts cache-aside lookups by key family and result (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_cache_lookups_total",
		Help: "Cache-aside lookups by key family and result",
	}, []string{"family", "result"})

	// FeedQueryLatency records how long a feed page takes to compose.
	FeedQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogicum_feed_query_latency_seconds",
		Help:    "Feed composition latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"feed"})

	// AuthorizationDecisions counts ownership gate outcomes.
	AuthorizationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_authorization_decisions_total",
		Help: "Ownership gate decisions by resource and outcome",
	}, []string{"resource", "outcome"})

	// EventsPublished counts domain events published to Redis by type and result.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_events_published_total",
		Help: "Domain events published by type and result",
	}, []string{"event_type", "result"})
)

// ObserveFeed returns a func that records the feed latency when deferred.
func ObserveFeed(feed string) func() {
	start := time.Now()
	return func() {
		FeedQueryLatency.WithLabelValues(feed).Observe(time.Since(start).Seconds())
	}
}
