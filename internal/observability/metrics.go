// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the launchpad.
type Metrics struct {
	// Curve metrics
	PoolsCreated   prometheus.Counter
	TradesRecorded prometheus.Counter

	// Graduation metrics
	GraduationsTotal    prometheus.Counter
	GraduationFailures  *prometheus.CounterVec
	GraduationFees      prometheus.Counter
	VenueMigrations     *prometheus.CounterVec
	StakingPoolsCreated prometheus.Counter
	DAOsCreated         prometheus.Counter
	MigrationDuration   prometheus.Histogram

	// Event metrics
	EventsPublished  prometheus.Counter
	EventSubscribers prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_launchpad"
	}

	return &Metrics{
		PoolsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "curve",
			Name:      "pools_created_total",
			Help:      "Total number of curve pools created",
		}),
		TradesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "curve",
			Name:      "trades_recorded_total",
			Help:      "Total number of trades recorded on the pricing ledger",
		}),

		GraduationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graduation",
			Name:      "graduations_total",
			Help:      "Total number of completed graduations",
		}),
		GraduationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graduation",
			Name:      "failures_total",
			Help:      "Total number of failed migration batches by reason",
		}, []string{"reason"}),
		GraduationFees: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graduation",
			Name:      "fees_lamports_total",
			Help:      "Total graduation fees collected, in lamports",
		}),
		VenueMigrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graduation",
			Name:      "venue_migrations_total",
			Help:      "Total number of completed migrations by venue family",
		}, []string{"venue"}),
		StakingPoolsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graduation",
			Name:      "staking_pools_created_total",
			Help:      "Total number of staking pools created at graduation",
		}),
		DAOsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graduation",
			Name:      "daos_created_total",
			Help:      "Total number of DAOs created at graduation",
		}),
		MigrationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graduation",
			Name:      "migration_duration_seconds",
			Help:      "Migration batch duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of graduation events published",
		}),
		EventSubscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "subscribers",
			Help:      "Current number of WebSocket event subscribers",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
