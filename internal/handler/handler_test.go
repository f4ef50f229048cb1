package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mcat-progress-api/internal/analytics"
	"github.com/noah-isme/mcat-progress-api/internal/dto"
	"github.com/noah-isme/mcat-progress-api/internal/middleware"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string, body io.Reader, identity *models.Identity) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	if identity != nil {
		c.Set(middleware.ContextIdentityKey, identity)
	}
	return c, w
}

// recordedStatus flushes a header-only response so the recorder sees the status gin holds.
func recordedStatus(c *gin.Context, w *httptest.ResponseRecorder) int {
	c.Writer.WriteHeaderNow()
	return w.Code
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(payload)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

var caller = &models.Identity{UID: "u1", Email: "ada@example.com", Name: "Ada"}

type profileServiceMock struct {
	profile    *models.Profile
	created    bool
	err        error
	lastUpsert service.ProfileUpsertRequest
	deletedUID string
	publicUID  string
}

func (m *profileServiceMock) Get(_ context.Context, uid string) (*models.Profile, error) {
	return m.profile, m.err
}

func (m *profileServiceMock) Upsert(_ context.Context, _ models.Identity, req service.ProfileUpsertRequest) (*models.Profile, bool, error) {
	m.lastUpsert = req
	return m.profile, m.created, m.err
}

func (m *profileServiceMock) UpdateTarget(_ context.Context, _ string, req service.TargetRequest) (*models.Target, error) {
	if m.err != nil {
		return nil, m.err
	}
	target := models.Target{ChemPhys: req.ChemPhys, CARS: req.CARS, BioBiochem: req.BioBiochem, PsychSoc: req.PsychSoc}.Recompute()
	return &target, nil
}

func (m *profileServiceMock) Delete(_ context.Context, uid string) error {
	m.deletedUID = uid
	return m.err
}

func (m *profileServiceMock) PublicProfile(_ context.Context, uid string) (*dto.PublicProfile, error) {
	m.publicUID = uid
	if m.err != nil {
		return nil, m.err
	}
	return &dto.PublicProfile{Name: "Ada"}, nil
}

func TestProfileHandlerRequiresIdentity(t *testing.T) {
	h := NewProfileHandler(&profileServiceMock{})
	c, w := newTestContext(http.MethodGet, "/profile", nil, nil)
	h.Get(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileHandlerGetNotFound(t *testing.T) {
	h := NewProfileHandler(&profileServiceMock{err: appErrors.ErrProfileNotFound})
	c, w := newTestContext(http.MethodGet, "/profile", nil, caller)
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PROFILE_NOT_FOUND")
}

func TestProfileHandlerUpsertStatus(t *testing.T) {
	mock := &profileServiceMock{profile: &models.Profile{UID: "u1"}, created: true}
	h := NewProfileHandler(mock)

	c, w := newTestContext(http.MethodPost, "/profile", jsonBody(t, map[string]interface{}{
		"zipcode":    "94110",
		"mcatTarget": map[string]int{"cars": 128},
	}), caller)
	h.Upsert(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "94110", mock.lastUpsert.Zipcode)
	require.NotNil(t, mock.lastUpsert.MCATTarget)
	assert.Equal(t, 128, mock.lastUpsert.MCATTarget.CARS)

	mock.created = false
	c, w = newTestContext(http.MethodPost, "/profile", jsonBody(t, map[string]string{}), caller)
	h.Upsert(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileHandlerUpsertInvalidBody(t *testing.T) {
	h := NewProfileHandler(&profileServiceMock{})
	c, w := newTestContext(http.MethodPost, "/profile", bytes.NewBufferString(`{"zipcode":`), caller)
	h.Upsert(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandlerDeleteAndPublic(t *testing.T) {
	mock := &profileServiceMock{}
	h := NewProfileHandler(mock)

	c, w := newTestContext(http.MethodDelete, "/profile", nil, caller)
	h.Delete(c)
	assert.Equal(t, http.StatusNoContent, recordedStatus(c, w))
	assert.Equal(t, "u1", mock.deletedUID)

	c, w = newTestContext(http.MethodGet, "/profiles/owner/public-profile", nil, caller)
	c.Params = gin.Params{{Key: "uid", Value: "owner"}}
	h.Public(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner", mock.publicUID)
}

type practiceLogServiceMock struct {
	lastReq   service.PracticeLogRequest
	lastUID   string
	lastQuery service.DateRangeQuery
	export    *service.ExportFile
	err       error
}

func (m *practiceLogServiceMock) Create(_ context.Context, uid string, req service.PracticeLogRequest) (*models.PracticeLogEntry, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.PracticeLogEntry{UID: uid, Section: req.Section, ScaledScore: 129}, nil
}

func (m *practiceLogServiceMock) List(_ context.Context, uid string, query service.DateRangeQuery) ([]models.PracticeLogEntry, error) {
	m.lastUID = uid
	m.lastQuery = query
	return []models.PracticeLogEntry{}, m.err
}

func (m *practiceLogServiceMock) Export(_ context.Context, _ string, _ string) (*service.ExportFile, error) {
	return m.export, m.err
}

func TestPracticeLogHandlerCreate(t *testing.T) {
	mock := &practiceLogServiceMock{}
	h := NewPracticeLogHandler(mock)
	c, w := newTestContext(http.MethodPost, "/profile/practice-logs", jsonBody(t, map[string]interface{}{
		"section": "cars", "platform": "AAMC", "rawScore": 45, "totalQuestions": 60,
	}), caller)
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.SectionCARS, mock.lastReq.Section)
	assert.Equal(t, 60, mock.lastReq.TotalQuestions)
}

func TestPracticeLogHandlerSharedListUsesOwner(t *testing.T) {
	mock := &practiceLogServiceMock{}
	h := NewPracticeLogHandler(mock)
	c, w := newTestContext(http.MethodGet, "/profiles/owner/public-practice-logs?from=2024-01-01", nil, caller)
	c.Params = gin.Params{{Key: "uid", Value: "owner"}}
	h.Shared(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner", mock.lastUID)
	assert.Equal(t, service.DateRangeQuery{From: "2024-01-01"}, mock.lastQuery)
}

func TestPracticeLogHandlerListRejectsBadRange(t *testing.T) {
	mock := &practiceLogServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "to must not be before from")}
	h := NewPracticeLogHandler(mock)
	c, w := newTestContext(http.MethodGet, "/profile/practice-logs?from=2024-03-05&to=2024-03-01", nil, caller)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.DateRangeQuery{From: "2024-03-05", To: "2024-03-01"}, mock.lastQuery)
}

func TestPracticeLogHandlerExport(t *testing.T) {
	mock := &practiceLogServiceMock{export: &service.ExportFile{
		Filename: "practice_logs_2024-03-09.csv", ContentType: "text/csv", Payload: []byte("Date\n"),
	}}
	h := NewPracticeLogHandler(mock)
	c, w := newTestContext(http.MethodGet, "/profile/practice-logs/export?format=csv", nil, caller)
	h.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="practice_logs_2024-03-09.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Date\n", w.Body.String())

	mock.err = appErrors.ErrFeatureDisabled
	c, w = newTestContext(http.MethodGet, "/profile/practice-logs/export", nil, caller)
	h.Export(c)
	assert.Equal(t, appErrors.ErrFeatureDisabled.Status, w.Code)
}

type attemptServiceMock struct {
	lastID string
	err    error
}

func (m *attemptServiceMock) Create(_ context.Context, _ string, req service.AttemptRequest) (*models.OfficialAttempt, error) {
	return &models.OfficialAttempt{AttemptScores: models.AttemptScores{CARS: req.CARS}.Recompute()}, m.err
}

func (m *attemptServiceMock) List(context.Context, string) ([]models.OfficialAttempt, error) {
	return []models.OfficialAttempt{}, m.err
}

func (m *attemptServiceMock) Update(_ context.Context, _ string, id string, _ service.AttemptRequest) (*models.OfficialAttempt, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.OfficialAttempt{ID: id}, nil
}

func TestAttemptHandler(t *testing.T) {
	mock := &attemptServiceMock{}
	h := NewAttemptHandler(mock)

	c, w := newTestContext(http.MethodPost, "/profile/mcat-attempts", jsonBody(t, map[string]int{"cars": 127}), caller)
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"total":127`)

	mock.err = appErrors.Clone(appErrors.ErrNotFound, "mcat attempt not found")
	c, w = newTestContext(http.MethodPut, "/profile/mcat-attempts/a1", jsonBody(t, map[string]int{}), caller)
	c.Params = gin.Params{{Key: "id", Value: "a1"}}
	h.Update(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "a1", mock.lastID)
}

type cycleServiceMock struct{}

func (cycleServiceMock) Create(_ context.Context, uid string, req service.CycleRequest) (*models.ApplicationCycle, error) {
	return &models.ApplicationCycle{UID: uid, Year: req.Year}, nil
}

func (cycleServiceMock) List(context.Context, string) ([]models.ApplicationCycle, error) {
	return []models.ApplicationCycle{{Year: 2025}}, nil
}

func TestCycleHandler(t *testing.T) {
	h := NewCycleHandler(cycleServiceMock{})
	c, w := newTestContext(http.MethodPost, "/profile/application-cycles", jsonBody(t, map[string]int{"year": 2025}), caller)
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext(http.MethodGet, "/profile/application-cycles", nil, caller)
	h.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"year":2025`)
}

type extracurricularServiceMock struct {
	patch   models.CategoryTargets
	deleted string
}

func (m *extracurricularServiceMock) List(context.Context, string) ([]models.Extracurricular, error) {
	return []models.Extracurricular{}, nil
}

func (m *extracurricularServiceMock) Get(_ context.Context, _ string, id string) (*models.Extracurricular, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "extracurricular not found")
}

func (m *extracurricularServiceMock) Create(_ context.Context, _ string, req service.ExtracurricularRequest) (*models.Extracurricular, error) {
	return &models.Extracurricular{Category: req.Category, Organization: req.Organization}, nil
}

func (m *extracurricularServiceMock) Update(_ context.Context, _ string, id string, req service.ExtracurricularRequest) (*models.Extracurricular, error) {
	return &models.Extracurricular{ID: id, Category: req.Category}, nil
}

func (m *extracurricularServiceMock) Delete(_ context.Context, _ string, id string) error {
	m.deleted = id
	return nil
}

func (m *extracurricularServiceMock) Targets(context.Context, string) (models.CategoryTargets, error) {
	return models.DefaultCategoryTargets(100), nil
}

func (m *extracurricularServiceMock) UpdateTargets(_ context.Context, _ string, patch models.CategoryTargets) (models.CategoryTargets, error) {
	m.patch = patch
	return models.DefaultCategoryTargets(100).Merge(patch), nil
}

func TestExtracurricularHandler(t *testing.T) {
	mock := &extracurricularServiceMock{}
	h := NewExtracurricularHandler(mock)

	c, w := newTestContext(http.MethodPost, "/profile/extracurriculars", jsonBody(t, map[string]interface{}{
		"type": "clinical", "organization": "Clinic", "hours": 12,
	}), caller)
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"clinical"`)

	c, w = newTestContext(http.MethodGet, "/profile/extracurriculars/x", nil, caller)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newTestContext(http.MethodDelete, "/profile/extracurriculars/x", nil, caller)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNoContent, recordedStatus(c, w))
	assert.Equal(t, "x", mock.deleted)

	c, w = newTestContext(http.MethodPut, "/profile/ecs-targets", jsonBody(t, map[string]float64{"research": 300}), caller)
	h.UpdateTargets(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 300.0, mock.patch[models.CategoryResearch])
	assert.Contains(t, w.Body.String(), `"research":300`)
	assert.Contains(t, w.Body.String(), `"clinical":100`)
}

type sharingServiceMock struct {
	allowed bool
	owner   string
}

func (m *sharingServiceMock) Get(context.Context, string) (*dto.ShareResponse, error) {
	return &dto.ShareResponse{SharedWith: []string{"mentor@example.com"}}, nil
}

func (m *sharingServiceMock) Update(_ context.Context, _ string, req dto.ShareRequest) (*dto.ShareResponse, error) {
	return &dto.ShareResponse{SharedWith: req.Emails}, nil
}

func (m *sharingServiceMock) CanView(_ context.Context, owner string, _ models.Identity) (bool, error) {
	m.owner = owner
	return m.allowed, nil
}

func TestSharingHandler(t *testing.T) {
	mock := &sharingServiceMock{allowed: true}
	h := NewSharingHandler(mock)

	c, w := newTestContext(http.MethodPut, "/profile/share", jsonBody(t, dto.ShareRequest{Emails: []string{"a@b.co"}}), caller)
	h.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shared_with":["a@b.co"]`)

	c, w = newTestContext(http.MethodGet, "/profiles/owner/shared", nil, caller)
	c.Params = gin.Params{{Key: "uid", Value: "owner"}}
	h.Check(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner", mock.owner)
	assert.JSONEq(t, `{"allowed":true}`, string(decodeEnvelope(t, w)["data"]))
}

type dashboardServiceMock struct {
	uid   string
	query service.DateRangeQuery
	hit   bool
	err   error
}

func (m *dashboardServiceMock) Build(_ context.Context, uid string, query service.DateRangeQuery) (*dto.DashboardResponse, bool, error) {
	m.uid = uid
	m.query = query
	if m.err != nil {
		return nil, false, m.err
	}
	return &dto.DashboardResponse{UID: uid, Dashboard: &analytics.Dashboard{Today: "2024-03-03"}}, m.hit, nil
}

func TestDashboardHandlerMine(t *testing.T) {
	mock := &dashboardServiceMock{hit: true}
	h := NewDashboardHandler(mock)

	c, w := newTestContext(http.MethodGet, "/profile/dashboard?from=2024-01-01&to=2024-02-01", nil, caller)
	middleware.WithResponseMeta()(c)
	h.Mine(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", mock.uid)
	assert.Equal(t, service.DateRangeQuery{From: "2024-01-01", To: "2024-02-01"}, mock.query)

	env := decodeEnvelope(t, w)
	assert.Contains(t, string(env["data"]), `"today":"2024-03-03"`)
	assert.Contains(t, string(env["meta"]), `"cache_hit":true`)
}

func TestDashboardHandlerSharedError(t *testing.T) {
	mock := &dashboardServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "to must not be before from")}
	h := NewDashboardHandler(mock)

	c, w := newTestContext(http.MethodGet, "/profiles/owner/dashboard", nil, caller)
	c.Params = gin.Params{{Key: "uid", Value: "owner"}}
	h.Shared(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "owner", mock.uid)
}

func TestMetricsHandler(t *testing.T) {
	metrics := service.NewMetricsService()
	h := NewMetricsHandler(metrics)

	c, w := newTestContext(http.MethodGet, "/metrics", nil, nil)
	h.Prometheus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mcat_goroutines_total")

	c, w = newTestContext(http.MethodGet, "/metrics/summary", nil, nil)
	h.Snapshot(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboards_built")

	c, w = newTestContext(http.MethodGet, "/metrics", nil, nil)
	NewMetricsHandler(nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, recordedStatus(c, w))
}
