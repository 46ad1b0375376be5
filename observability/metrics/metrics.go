// Package metrics holds the Prometheus collectors of newsdash.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Client metrics track calls made to the news API
var (
	// ClientRequestsTotal counts backend calls by operation and outcome (ok, error, fallback)
	ClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdash_client_requests_total",
			Help: "Total number of news API requests made by the client",
		},
		[]string{"operation", "outcome"},
	)

	// ClientRequestDuration measures backend call latency in seconds
	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsdash_client_request_duration_seconds",
			Help:    "News API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Server metrics track the reference backend
var (
	// ServerRequestsTotal counts requests served by method, route and status
	ServerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsdash_server_requests_total",
			Help: "Total number of requests served by the reference backend",
		},
		[]string{"method", "route", "status"},
	)

	// StoredArticles is the number of articles held by the reference backend
	StoredArticles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsdash_server_stored_articles",
			Help: "Number of articles in the reference backend store",
		},
	)
)

// RecordClientRequest records one backend call
func RecordClientRequest(operation, outcome string, elapsed time.Duration) {
	ClientRequestsTotal.WithLabelValues(operation, outcome).Inc()
	ClientRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
