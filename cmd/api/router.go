package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/mcat-progress-api/api/swagger"
	"github.com/noah-isme/mcat-progress-api/internal/handler"
	"github.com/noah-isme/mcat-progress-api/internal/middleware"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/config"
	"github.com/noah-isme/mcat-progress-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mcat-progress-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mcat-progress-api/pkg/middleware/requestid"
)

type routerDeps struct {
	Config           *config.Config
	Logger           *zap.Logger
	Metrics          *service.MetricsService
	Auth             middleware.TokenValidator
	Audit            middleware.AuditWriter
	Readiness        []func(context.Context) error
	Profiles         *service.ProfileService
	PracticeLogs     *service.PracticeLogService
	Attempts         *service.AttemptService
	Cycles           *service.CycleService
	Extracurriculars *service.ExtracurricularService
	Sharing          *service.SharingService
	Dashboards       *service.DashboardService
}

func newRouter(deps routerDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	metricsHandler := handler.NewMetricsHandler(deps.Metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", readiness(deps.Readiness))
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	profileHandler := handler.NewProfileHandler(deps.Profiles)
	practiceHandler := handler.NewPracticeLogHandler(deps.PracticeLogs)
	attemptHandler := handler.NewAttemptHandler(deps.Attempts)
	cycleHandler := handler.NewCycleHandler(deps.Cycles)
	ecHandler := handler.NewExtracurricularHandler(deps.Extracurriculars)
	sharingHandler := handler.NewSharingHandler(deps.Sharing)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboards)

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(deps.Audit, deps.Logger, action, resource)
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta(), middleware.Auth(deps.Auth))
	api.GET("/metrics/summary", metricsHandler.Snapshot)

	profile := api.Group("/profile")
	profile.GET("", profileHandler.Get)
	profile.POST("", audit(models.AuditActionProfileUpsert, "profile"), profileHandler.Upsert)
	profile.DELETE("", audit(models.AuditActionProfileDelete, "profile"), profileHandler.Delete)
	profile.PUT("/target", audit(models.AuditActionTargetUpdate, "profile"), profileHandler.UpdateTarget)

	profile.GET("/practice-logs", practiceHandler.List)
	profile.POST("/practice-logs", audit(models.AuditActionPracticeLog, "practice_log"), practiceHandler.Create)
	profile.GET("/practice-logs/export", practiceHandler.Export)

	profile.GET("/mcat-attempts", attemptHandler.List)
	profile.POST("/mcat-attempts", audit(models.AuditActionAttemptCreate, "mcat_attempt"), attemptHandler.Create)
	profile.PUT("/mcat-attempts/:id", audit(models.AuditActionAttemptUpdate, "mcat_attempt"), attemptHandler.Update)

	profile.GET("/application-cycles", cycleHandler.List)
	profile.POST("/application-cycles", audit(models.AuditActionCycleCreate, "application_cycle"), cycleHandler.Create)

	profile.GET("/extracurriculars", ecHandler.List)
	profile.POST("/extracurriculars", audit(models.AuditActionECCreate, "extracurricular"), ecHandler.Create)
	profile.GET("/extracurriculars/:id", ecHandler.Get)
	profile.PUT("/extracurriculars/:id", audit(models.AuditActionECUpdate, "extracurricular"), ecHandler.Update)
	profile.DELETE("/extracurriculars/:id", audit(models.AuditActionECDelete, "extracurricular"), ecHandler.Delete)
	profile.GET("/ecs-targets", ecHandler.Targets)
	profile.PUT("/ecs-targets", audit(models.AuditActionECTargetsUpdate, "profile"), ecHandler.UpdateTargets)

	profile.GET("/share", sharingHandler.Get)
	profile.PUT("/share", audit(models.AuditActionShareUpdate, "profile"), sharingHandler.Update)

	profile.GET("/dashboard", dashboardHandler.Mine)

	profiles := api.Group("/profiles/:uid")
	profiles.GET("/shared", sharingHandler.Check)
	shared := profiles.Group("", middleware.SharedAccess(deps.Sharing))
	shared.GET("/public-profile", profileHandler.Public)
	shared.GET("/public-practice-logs", practiceHandler.Shared)
	shared.GET("/dashboard", dashboardHandler.Shared)

	return r
}

func readiness(checks []func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
