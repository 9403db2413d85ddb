package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryCache counts query layer lookups by kind (list, detail, reviews)
	// and result (hit, stale, miss, placeholder).
	QueryCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resep_query_cache_total",
		Help: "Recipe query cache lookups.",
	}, []string{"kind", "result"})

	// RemoteRequests counts remote API calls by endpoint and outcome.
	RemoteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resep_remote_requests_total",
		Help: "Remote recipe API requests.",
	}, []string{"endpoint", "outcome"})

	// RemoteLatency observes remote API latency by endpoint.
	RemoteLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resep_remote_request_seconds",
		Help:    "Remote recipe API latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// FavoriteToggles counts favorite toggles by action (add, remove, error).
	FavoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resep_favorite_toggles_total",
		Help: "Favorite toggle operations.",
	}, []string{"action"})

	// Favorites tracks the current number of favorites.
	Favorites = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resep_favorites",
		Help: "Number of favorited recipes.",
	})

	// ShareActions counts share and copy actions by method.
	ShareActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resep_share_actions_total",
		Help: "Share and copy-link actions.",
	}, []string{"action", "method"})
)
