package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

func newPracticeLogService(f *serviceFixture, exports bool) *PracticeLogService {
	svc := NewPracticeLogService(PracticeLogServiceParams{
		Logs:           f.logs,
		Profiles:       f.profileService,
		Cache:          f.cache,
		Metrics:        NewMetricsService(),
		ExportsEnabled: exports,
	})
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestPracticeLogServiceCreateScales(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newPracticeLogService(f, true)

	entry, err := svc.Create(context.Background(), "u1", PracticeLogRequest{
		Date:           "2024-03-01",
		Section:        models.SectionCARS,
		Subtopic:       " Humanities ",
		Platform:       "UWorld",
		RawScore:       45,
		TotalQuestions: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 75, entry.Percent)
	assert.Equal(t, 129, entry.ScaledScore)
	assert.Equal(t, "Humanities", entry.Subtopic)
	require.NotNil(t, entry.Date)
	assert.Equal(t, "2024-03-01", entry.Date.Format(dateLayout))
	assert.Equal(t, []string{"dash:u1:*"}, f.cacheRepo.deleted)
}

func TestPracticeLogServiceCreateValidation(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newPracticeLogService(f, true)

	cases := map[string]PracticeLogRequest{
		"unknown section": {Section: "physics", Platform: "AAMC", RawScore: 1, TotalQuestions: 2},
		"raw above total": {Section: models.SectionCARS, Platform: "AAMC", RawScore: 3, TotalQuestions: 2},
		"zero total":      {Section: models.SectionCARS, Platform: "AAMC", RawScore: 0, TotalQuestions: 0},
		"negative raw":    {Section: models.SectionCARS, Platform: "AAMC", RawScore: -1, TotalQuestions: 2},
		"bad date":        {Date: "03/01/2024", Section: models.SectionCARS, Platform: "AAMC", RawScore: 1, TotalQuestions: 2},
		"missing plat":    {Section: models.SectionCARS, RawScore: 1, TotalQuestions: 2},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "u1", req)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
	assert.Empty(t, f.logs.logs)
}

func TestPracticeLogServiceCreateRequiresProfile(t *testing.T) {
	f := newServiceFixture()
	svc := newPracticeLogService(f, true)
	_, err := svc.Create(context.Background(), "u1", PracticeLogRequest{Section: models.SectionCARS, Platform: "AAMC", RawScore: 1, TotalQuestions: 2})
	assert.ErrorIs(t, err, appErrors.ErrProfileNotFound)
}

func TestPracticeLogServiceListFilters(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newPracticeLogService(f, true)
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	f.logs.logs = []models.PracticeLogEntry{
		{UID: "u1", Date: &d2, Section: models.SectionCARS},
		{UID: "u1", Date: &d1, Section: models.SectionPsychSoc},
		{UID: "u1", Section: models.SectionChemPhys},
	}

	all, err := svc.List(context.Background(), "u1", DateRangeQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, models.SectionCARS, all[0].Section)

	filtered, err := svc.List(context.Background(), "u1", DateRangeQuery{From: " 2024-03-02 "})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, models.SectionCARS, filtered[0].Section)

	empty, err := svc.List(context.Background(), "u2", DateRangeQuery{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
}

func TestPracticeLogServiceListStoreError(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	f.logs.err = errors.New("db down")
	svc := newPracticeLogService(f, true)
	_, err := svc.List(context.Background(), "u1", DateRangeQuery{})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestPracticeLogServiceListRejectsBadRange(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newPracticeLogService(f, true)

	_, err := svc.List(context.Background(), "u1", DateRangeQuery{From: "2024-03-05", To: "2024-03-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.List(context.Background(), "u1", DateRangeQuery{To: "tomorrow"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestDateRangeQueryFilter(t *testing.T) {
	q := DateRangeQuery{From: " 2024-03-01", To: "2024-03-01 "}
	filter, err := q.Filter()
	require.NoError(t, err)
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	assert.True(t, filter.From.Equal(*filter.To))
	assert.Equal(t, "2024-03-01", q.From)

	empty, err := (&DateRangeQuery{}).Filter()
	require.NoError(t, err)
	assert.False(t, empty.Active())
}

func TestPracticeLogServiceExportCSV(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f.logs.logs = []models.PracticeLogEntry{{
		UID: "u1", Date: &d, Section: models.SectionBioBiochem, Subtopic: "Enzymes", Platform: "AAMC",
		RawScore: 50, TotalQuestions: 59, Percent: 85, ScaledScore: 130,
	}}
	svc := newPracticeLogService(f, true)

	file, err := svc.Export(context.Background(), "u1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "practice_logs_2024-03-09.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	body := string(file.Payload)
	assert.True(t, strings.HasPrefix(body, "Date,Section,Subtopic,Platform,Raw,Total,%,Scaled"))
	assert.Contains(t, body, "2024-03-01,Bio/Biochem,Enzymes,AAMC,50,59,85,130")
}

func TestPracticeLogServiceExportPDF(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))
	svc := newPracticeLogService(f, true)

	file, err := svc.Export(context.Background(), "u1", "PDF")
	require.NoError(t, err)
	assert.Equal(t, "practice_logs_2024-03-09.pdf", file.Filename)
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
}

func TestPracticeLogServiceExportGuards(t *testing.T) {
	f := newServiceFixture(testProfile("u1"))

	_, err := newPracticeLogService(f, false).Export(context.Background(), "u1", "csv")
	assert.ErrorIs(t, err, appErrors.ErrFeatureDisabled)

	_, err = newPracticeLogService(f, true).Export(context.Background(), "u1", "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
