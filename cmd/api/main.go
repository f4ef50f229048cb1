package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/analytics"
	"github.com/noah-isme/mcat-progress-api/internal/repository"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/cache"
	"github.com/noah-isme/mcat-progress-api/pkg/config"
	"github.com/noah-isme/mcat-progress-api/pkg/database"
	"github.com/noah-isme/mcat-progress-api/pkg/jobs"
	"github.com/noah-isme/mcat-progress-api/pkg/logger"
)

// @title MCAT Progress API
// @version 1.0.0
// @description Profiles, practice logs, official attempts and derived analytics for MCAT preparation.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("dashboard cache disabled", zap.Error(err))
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	engine := analytics.New(analytics.ConfigFrom(cfg))

	profileRepo := repository.NewProfileRepository(db)
	practiceRepo := repository.NewPracticeLogRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	ecRepo := repository.NewExtracurricularRepository(db)
	cycleRepo := repository.NewApplicationCycleRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, "mcat", logr)
	defer cacheRepo.Close() //nolint:errcheck

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && cacheRepo.Enabled())
	profileSvc := service.NewProfileService(service.ProfileServiceParams{
		Profiles:         profileRepo,
		PracticeLogs:     practiceRepo,
		Attempts:         attemptRepo,
		Extracurriculars: ecRepo,
		Cycles:           cycleRepo,
		Cache:            cacheSvc,
		Validator:        validate,
		Logger:           logr,
		ScaleMin:         cfg.ScoreScale.Min,
		ScaleMax:         cfg.ScoreScale.Max,
		DefaultHours:     cfg.Analytics.DefaultCategoryHours,
	})

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), logr, jobs.QueueConfig{Workers: 2, MaxRetries: 3})
	auditSvc.Start(context.Background())
	defer auditSvc.Stop()

	deps := routerDeps{
		Config:  cfg,
		Logger:  logr,
		Metrics: metrics,
		Auth: service.NewAuthService(logr, service.AuthConfig{
			TokenSecret: cfg.Auth.TokenSecret,
			Issuer:      cfg.Auth.Issuer,
			Audience:    cfg.Auth.Audience,
		}),
		Audit:     auditSvc,
		Readiness: []func(context.Context) error{db.PingContext, cacheRepo.Ping},
		Profiles:  profileSvc,
		PracticeLogs: service.NewPracticeLogService(service.PracticeLogServiceParams{
			Logs:           practiceRepo,
			Profiles:       profileSvc,
			Engine:         engine,
			Cache:          cacheSvc,
			Metrics:        metrics,
			Validator:      validate,
			Logger:         logr,
			ExportsEnabled: cfg.Exports.Enabled,
		}),
		Attempts: service.NewAttemptService(service.AttemptServiceParams{
			Attempts:  attemptRepo,
			Profiles:  profileSvc,
			Cache:     cacheSvc,
			Metrics:   metrics,
			Validator: validate,
			Logger:    logr,
			ScaleMin:  cfg.ScoreScale.Min,
			ScaleMax:  cfg.ScoreScale.Max,
		}),
		Cycles: service.NewCycleService(cycleRepo, profileSvc, metrics, validate, logr),
		Extracurriculars: service.NewExtracurricularService(service.ExtracurricularServiceParams{
			Entries:   ecRepo,
			Targets:   profileRepo,
			Profiles:  profileSvc,
			Cache:     cacheSvc,
			Metrics:   metrics,
			Validator: validate,
			Logger:    logr,
		}),
		Sharing: service.NewSharingService(profileRepo, profileSvc, validate, logr),
		Dashboards: service.NewDashboardService(service.DashboardServiceParams{
			Profiles: profileSvc,
			Engine:   engine,
			Cache:    cacheSvc,
			Metrics:  metrics,
			Logger:   logr,
			CacheTTL: cfg.Dashboard.CacheTTL,
		}),
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
