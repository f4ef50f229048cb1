package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/config"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

type rejectAll struct{}

func (rejectAll) ValidateToken(string) (*models.Identity, error) {
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

func testRouter(env string, checks ...func(context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(routerDeps{
		Config:    &config.Config{Env: env, APIPrefix: "/api/v1"},
		Logger:    zap.NewNop(),
		Metrics:   service.NewMetricsService(),
		Auth:      rejectAll{},
		Readiness: checks,
	})
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouterPublicEndpoints(t *testing.T) {
	r := testRouter(config.EnvDevelopment)
	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ready").Code)

	metrics := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "mcat_http_requests_total")
	assert.NotEmpty(t, metrics.Header().Get("X-Request-ID"))
}

func TestRouterReadinessFailure(t *testing.T) {
	r := testRouter(config.EnvDevelopment, func(context.Context) error { return errors.New("db down") })
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/ready").Code)
}

func TestRouterRequiresToken(t *testing.T) {
	r := testRouter(config.EnvDevelopment)
	for _, path := range []string{
		"/api/v1/profile",
		"/api/v1/profile/dashboard",
		"/api/v1/profiles/u1/dashboard",
		"/api/v1/profiles/u1/shared",
	} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path).Code, path)
	}
}

func TestRouterDocsHiddenInProduction(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(testRouter(config.EnvDevelopment), "/docs/doc.json").Code)
	assert.Equal(t, http.StatusNotFound, get(testRouter(config.EnvProduction), "/docs/doc.json").Code)
}
