package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"content-hub/internal/domain/entity"
)

func TestUpdateContentStats(t *testing.T) {
	UpdateContentStats([]entity.CategoryCount{
		{CategoryID: "cat1", Count: 3},
		{CategoryID: "cat2", Count: 1},
	})

	assert.Equal(t, 4.0, testutil.ToFloat64(ContentsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(ContentsByCategory.WithLabelValues("cat1")))

	// cat1 がなくなったらラベルごと消える
	UpdateContentStats([]entity.CategoryCount{{CategoryID: "cat2", Count: 2}})
	assert.Equal(t, 2.0, testutil.ToFloat64(ContentsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(ContentsByCategory))
}

func TestRecordAssociationRejected(t *testing.T) {
	before := testutil.ToFloat64(AssociationRejectionsTotal.WithLabelValues("create"))
	beforeOps := testutil.ToFloat64(ContentOperationsTotal.WithLabelValues("create", OutcomeRejected))

	RecordAssociationRejected("create")

	assert.Equal(t, before+1, testutil.ToFloat64(AssociationRejectionsTotal.WithLabelValues("create")))
	assert.Equal(t, beforeOps+1, testutil.ToFloat64(ContentOperationsTotal.WithLabelValues("create", OutcomeRejected)))
}

func TestRecordStatsRefresh(t *testing.T) {
	before := testutil.ToFloat64(StatsRefreshErrors)

	RecordStatsRefresh(10*time.Millisecond, nil)
	assert.Equal(t, before, testutil.ToFloat64(StatsRefreshErrors))

	RecordStatsRefresh(10*time.Millisecond, errors.New("db down"))
	assert.Equal(t, before+1, testutil.ToFloat64(StatsRefreshErrors))
}
