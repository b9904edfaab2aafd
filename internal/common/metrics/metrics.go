package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_backend_requests_total",
			Help: "Total number of backend requests issued by the console",
		},
		[]string{"resource", "method"},
	)

	BackendRequestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_backend_request_failures_total",
			Help: "Total number of backend requests that failed",
		},
		[]string{"resource", "method", "error_code"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "console_backend_request_duration_seconds",
			Help: "Duration of backend requests in seconds",
		},
		[]string{"resource", "method"},
	)

	ScreenLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_screen_loads_total",
			Help: "Total number of screen loads by outcome",
		},
		[]string{"screen", "outcome"},
	)

	StaleCompletionsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_stale_completions_discarded_total",
			Help: "Completions discarded because a newer load superseded them",
		},
		[]string{"screen"},
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_catalog_cache_events_total",
			Help: "Offer catalog cache events by kind (hit, miss, error)",
		},
		[]string{"kind"},
	)
)
