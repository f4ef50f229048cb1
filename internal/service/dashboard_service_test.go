package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mcat-progress-api/internal/analytics"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

func newDashboardService(f *serviceFixture, metrics *MetricsService) *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		Profiles: f.profileService,
		Engine:   analytics.New(analytics.DefaultConfig()),
		Cache:    f.cache,
		Metrics:  metrics,
		Now:      func() time.Time { return time.Date(2024, 3, 3, 18, 0, 0, 0, time.UTC) },
	})
}

func seedDashboard(f *serviceFixture) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	f.logs.logs = []models.PracticeLogEntry{
		{UID: "u1", Date: &d1, Section: models.SectionCARS, Platform: "AAMC", TotalQuestions: 53, ScaledScore: 125},
		{UID: "u1", Date: &d2, Section: models.SectionCARS, Platform: "UWorld", TotalQuestions: 53, ScaledScore: 127},
		{UID: "u1", Date: &d3, Section: models.SectionChemPhys, Platform: "AAMC", TotalQuestions: 59, ScaledScore: 129},
	}
}

func TestDashboardServiceBuild(t *testing.T) {
	p := testProfile("u1")
	p.Target = models.Target{CARS: 128, ChemPhys: 128}.Recompute()
	f := newServiceFixture(p)
	seedDashboard(f)
	metrics := NewMetricsService()
	svc := newDashboardService(f, metrics)

	resp, hit, err := svc.Build(context.Background(), "u1", DateRangeQuery{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "u1", resp.UID)
	assert.Equal(t, "Test u1", resp.Owner)
	assert.Equal(t, "2024-03-03", resp.Today)
	require.NotNil(t, resp.Streaks)
	assert.Equal(t, 3, resp.Streaks.Current)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, models.SectionCARS, resp.Summary.TopSection)
	assert.Len(t, resp.Recommendations, len(models.Categories))
	assert.Empty(t, resp.Errors)
	assert.Equal(t, uint64(1), metrics.Snapshot().DashboardsBuilt)

	cached, hit, err := svc.Build(context.Background(), "u1", DateRangeQuery{})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, resp.Today, cached.Today)
	assert.Equal(t, uint64(1), metrics.Snapshot().DashboardsBuilt)
}

func TestDashboardServiceInvalidatedByWrites(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newDashboardService(f, nil)
	logs := newPracticeLogService(f, false)
	ctx := context.Background()

	_, _, err := svc.Build(ctx, "u1", DateRangeQuery{})
	require.NoError(t, err)
	_, err = logs.Create(ctx, "u1", PracticeLogRequest{Date: "2024-03-03", Section: models.SectionCARS, Platform: "AAMC", RawScore: 40, TotalQuestions: 53})
	require.NoError(t, err)

	resp, hit, err := svc.Build(ctx, "u1", DateRangeQuery{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, resp.Streaks.Current)
}

func TestDashboardServiceRangeFiltersPracticeLogs(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	seedDashboard(f)
	svc := newDashboardService(f, nil)

	resp, _, err := svc.Build(context.Background(), "u1", DateRangeQuery{From: "2024-03-02", To: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", resp.From)
	require.Len(t, resp.Heatmap, 1)
	assert.Equal(t, 0, resp.Streaks.Current)
	assert.Equal(t, models.SectionCARS, resp.Summary.TopSection)
}

func TestDashboardServiceRejectsBadRange(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newDashboardService(f, nil)

	_, _, err := svc.Build(context.Background(), "u1", DateRangeQuery{From: "2024-03-05", To: "2024-03-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, _, err = svc.Build(context.Background(), "u1", DateRangeQuery{From: "yesterday"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestDashboardServiceMissingProfile(t *testing.T) {
	f := newServiceFixture()
	_, _, err := newDashboardService(f, nil).Build(context.Background(), "u1", DateRangeQuery{})
	assert.ErrorIs(t, err, appErrors.ErrProfileNotFound)
}
