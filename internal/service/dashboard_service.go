package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/analytics"
	"github.com/noah-isme/mcat-progress-api/internal/dto"
	"github.com/noah-isme/mcat-progress-api/internal/models"
)

type profileLoader interface {
	Load(ctx context.Context, uid string) (*models.Profile, error)
}

// DashboardService composes every analytics calculator over a user's records.
type DashboardService struct {
	profiles profileLoader
	engine   *analytics.Engine
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	ttl      time.Duration
	now      func() time.Time
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Profiles profileLoader
	Engine   *analytics.Engine
	Cache    *CacheService
	Metrics  *MetricsService
	Logger   *zap.Logger
	CacheTTL time.Duration
	Now      func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := params.Engine
	if engine == nil {
		engine = analytics.New(analytics.DefaultConfig())
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		profiles: params.Profiles,
		engine:   engine,
		cache:    params.Cache,
		metrics:  params.Metrics,
		logger:   logger,
		ttl:      params.CacheTTL,
		now:      now,
	}
}

// Build returns the dashboard for uid. It reports whether the result came from cache.
func (s *DashboardService) Build(ctx context.Context, uid string, query DateRangeQuery) (*dto.DashboardResponse, bool, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	today := now.In(s.engine.Config().Location).Format(dateLayout)
	key := DashboardKey(uid, query.From, query.To, today)

	var cached dto.DashboardResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit && cached.Dashboard != nil {
		return &cached, true, nil
	}

	profile, err := s.profiles.Load(ctx, uid)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	dashboard := s.engine.Dashboard(analytics.InputFromProfile(profile, filter), now)
	failed := make([]string, 0, len(dashboard.Errors))
	for _, calcErr := range dashboard.Errors {
		failed = append(failed, calcErr.Calculator)
		s.logger.Warn("dashboard calculator failed",
			zap.String("uid", uid),
			zap.String("calculator", calcErr.Calculator),
			zap.String("error", calcErr.Message),
		)
	}
	s.metrics.ObserveDashboard(time.Since(start), failed)

	resp := &dto.DashboardResponse{
		UID:       uid,
		From:      query.From,
		To:        query.To,
		Owner:     profile.Name,
		Dashboard: dashboard,
	}
	_ = s.cache.Set(ctx, key, resp, s.ttl)
	return resp, false, nil
}
