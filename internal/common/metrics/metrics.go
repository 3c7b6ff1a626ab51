package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emko_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)

	ListingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emko_listings_created_total",
		Help: "Listings created",
	})

	ListingsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emko_listings_deleted_total",
		Help: "Listings deleted, by actor role",
	}, []string{"actor"})

	PromotionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emko_promotion_transitions_total",
		Help: "Promotion state transitions",
	}, []string{"to"})

	BansIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emko_bans_issued_total",
		Help: "Identities banned by an administrator",
	})

	MagicLinksSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emko_magic_links_total",
		Help: "Magic sign-in links by outcome",
	}, []string{"outcome"})

	ExpiredFeaturesCleared = promauto.NewCounter(prometheus.CounterOpts{
		Name: "emko_expired_features_cleared_total",
		Help: "Stale featured flags reset by the expiry sweeper",
	})
)

func RecordRequest(method, route, status string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
