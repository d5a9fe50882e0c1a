package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations
var (
	// ContentsTotal tracks total number of contents in the database
	ContentsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "contents_total",
			Help: "Total number of contents in the database",
		},
	)

	// ContentsByCategory tracks content count per category
	ContentsByCategory = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "contents_by_category",
			Help: "Number of contents per category",
		},
		[]string{"category_id"},
	)

	// ContentOperationsTotal counts content mutations by operation and outcome
	ContentOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_operations_total",
			Help: "Total number of content operations",
		},
		[]string{"operation", "outcome"},
	)

	// AssociationRejectionsTotal counts writes rejected because the category is not linked to the topic
	AssociationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_association_rejections_total",
			Help: "Total number of content writes rejected by the category/topic association check",
		},
		[]string{"operation"},
	)

	// StatsRefreshDuration measures the periodic statistics refresh
	StatsRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_stats_refresh_duration_seconds",
			Help:    "Time taken to refresh content statistics",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		},
	)

	// StatsRefreshErrors counts failed statistics refreshes
	StatsRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "content_stats_refresh_errors_total",
			Help: "Total number of failed content statistics refreshes",
		},
	)
)
