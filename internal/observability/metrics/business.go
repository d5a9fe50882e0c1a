package metrics

import (
	"time"

	"content-hub/internal/domain/entity"
)

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
)

// RecordContentOperation records a content mutation outcome.
func RecordContentOperation(operation, outcome string) {
	ContentOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordAssociationRejected records a write refused by the association check.
func RecordAssociationRejected(operation string) {
	AssociationRejectionsTotal.WithLabelValues(operation).Inc()
	RecordContentOperation(operation, OutcomeRejected)
}

// UpdateContentStats replaces the per-category gauges with counts.
// Categories that dropped to zero disappear from the gauge vector.
func UpdateContentStats(counts []entity.CategoryCount) {
	ContentsByCategory.Reset()
	var total int64
	for _, c := range counts {
		ContentsByCategory.WithLabelValues(c.CategoryID).Set(float64(c.Count))
		total += c.Count
	}
	ContentsTotal.Set(float64(total))
}

// RecordStatsRefresh records the duration and result of a statistics refresh.
func RecordStatsRefresh(duration time.Duration, err error) {
	StatsRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		StatsRefreshErrors.Inc()
	}
}
