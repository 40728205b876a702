// Package metrics provides Prometheus metrics for identity-service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IdentifyTotal counts identification attempts by method and outcome.
	IdentifyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "identity",
			Name:      "identify_total",
			Help:      "Total number of identification attempts",
		},
		[]string{"method", "status"},
	)

	// VerifyTotal counts verification attempts by outcome.
	VerifyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "identity",
			Name:      "verify_total",
			Help:      "Total number of verification attempts",
		},
		[]string{"status"},
	)

	// RequestDuration measures request duration per operation.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "identity",
			Name:      "request_duration_seconds",
			Help:      "Duration of identification operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CleanupDeletedTotal counts rows removed by the expiry janitor.
	CleanupDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "identity",
			Name:      "cleanup_deleted_total",
			Help:      "Total number of expired rows removed by the cleanup loop",
		},
		[]string{"table"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "identity",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)
)

// RecordIdentify records an identification attempt.
func RecordIdentify(method, status string, duration float64) {
	IdentifyTotal.WithLabelValues(method, status).Inc()
	RequestDuration.WithLabelValues("identify").Observe(duration)
}

// RecordVerify records a verification attempt.
func RecordVerify(status string, duration float64) {
	VerifyTotal.WithLabelValues(status).Inc()
	RequestDuration.WithLabelValues("verify").Observe(duration)
}

// RecordCleanup records rows removed by the expiry janitor.
func RecordCleanup(table string, count int64) {
	CleanupDeletedTotal.WithLabelValues(table).Add(float64(count))
}

// RecordRateLimited records a rejected request.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}
