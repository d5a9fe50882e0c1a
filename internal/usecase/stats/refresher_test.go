package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-hub/internal/domain/entity"
	"content-hub/internal/observability/metrics"
)

type counterFunc func(ctx context.Context, topicID *string) ([]entity.CategoryCount, error)

func (f counterFunc) CountByCategory(ctx context.Context, topicID *string) ([]entity.CategoryCount, error) {
	return f(ctx, topicID)
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRefresher_RunOnce(t *testing.T) {
	var gotTopic *string
	r := NewRefresher(counterFunc(func(_ context.Context, topicID *string) ([]entity.CategoryCount, error) {
		gotTopic = topicID
		return []entity.CategoryCount{{CategoryID: "cat-1", Count: 3}, {CategoryID: "cat-2", Count: 4}}, nil
	}), discard(), time.Second)

	require.NoError(t, r.RunOnce(context.Background()))
	assert.Nil(t, gotTopic)
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.ContentsTotal))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.ContentsByCategory.WithLabelValues("cat-1")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.ContentsByCategory))
}

func TestRefresher_RunOnce_Error(t *testing.T) {
	before := testutil.ToFloat64(metrics.StatsRefreshErrors)
	boom := errors.New("db down")
	r := NewRefresher(counterFunc(func(context.Context, *string) ([]entity.CategoryCount, error) {
		return nil, boom
	}), discard(), time.Second)

	assert.ErrorIs(t, r.RunOnce(context.Background()), boom)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StatsRefreshErrors))
}

func TestRefresher_Start_InvalidSchedule(t *testing.T) {
	r := NewRefresher(counterFunc(func(context.Context, *string) ([]entity.CategoryCount, error) {
		return nil, nil
	}), discard(), time.Second)

	assert.Error(t, r.Start("not a schedule"))
}

func TestRefresher_StartStop(t *testing.T) {
	r := NewRefresher(counterFunc(func(context.Context, *string) ([]entity.CategoryCount, error) {
		return nil, nil
	}), discard(), time.Second)

	require.NoError(t, r.Start("@every 1h"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
}
