// Package stats periodically recomputes content statistics and publishes them
// as Prometheus gauges.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"content-hub/internal/domain/entity"
	"content-hub/internal/handler/http/respond"
	"content-hub/internal/observability/metrics"
)

// Counter is the read side the refresher needs.
type Counter interface {
	CountByCategory(ctx context.Context, topicID *string) ([]entity.CategoryCount, error)
}

// Refresher runs the statistics job on a cron schedule.
type Refresher struct {
	counter Counter
	logger  *slog.Logger
	timeout time.Duration
	cron    *cron.Cron
}

// NewRefresher creates a Refresher. Each run is bounded by timeout.
func NewRefresher(counter Counter, logger *slog.Logger, timeout time.Duration) *Refresher {
	return &Refresher{
		counter: counter,
		logger:  logger,
		timeout: timeout,
		cron:    cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start schedules the job and starts the scheduler. It returns an error for an invalid spec.
func (r *Refresher) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() { _ = r.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("schedule stats refresh %q: %w", schedule, err)
	}
	r.cron.Start()
	r.logger.Info("stats refresher started", slog.String("schedule", schedule))
	return nil
}

// Stop stops the scheduler and waits for a running job until ctx is done.
func (r *Refresher) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		r.logger.Warn("stats refresher stop timed out")
	}
}

// RunOnce recomputes the per-category counts and updates the gauges.
func (r *Refresher) RunOnce(ctx context.Context) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	counts, err := r.counter.CountByCategory(ctx, nil)
	metrics.RecordStatsRefresh(time.Since(start), err)
	if err != nil {
		r.logger.Error("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
		return err
	}

	metrics.UpdateContentStats(counts)
	r.logger.Debug("stats refreshed",
		slog.Int("categories", len(counts)),
		slog.Duration("duration", time.Since(start)))
	return nil
}
