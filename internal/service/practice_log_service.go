package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/analytics"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
	"github.com/noah-isme/mcat-progress-api/pkg/export"
)

type practiceLogStore interface {
	Create(ctx context.Context, entry *models.PracticeLogEntry) error
	ListByUID(ctx context.Context, uid string) ([]models.PracticeLogEntry, error)
}

type profileFinder interface {
	Find(ctx context.Context, uid string) (*models.Profile, error)
}

// PracticeLogRequest logs one practice session.
type PracticeLogRequest struct {
	Date           string         `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Section        models.Section `json:"section" validate:"required,oneof=chemPhys cars bioBiochem psychSoc"`
	Subtopic       string         `json:"subtopic" validate:"max=200"`
	Platform       string         `json:"platform" validate:"required,max=60"`
	RawScore       int            `json:"rawScore" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int            `json:"totalQuestions" validate:"required,gt=0"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// PracticeLogService appends practice logs and exports them.
type PracticeLogService struct {
	logs      practiceLogStore
	profiles  profileFinder
	engine    *analytics.Engine
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	exports   bool
	now       func() time.Time
}

// PracticeLogServiceParams groups constructor dependencies.
type PracticeLogServiceParams struct {
	Logs           practiceLogStore
	Profiles       profileFinder
	Engine         *analytics.Engine
	Cache          *CacheService
	Metrics        *MetricsService
	Validator      *validator.Validate
	Logger         *zap.Logger
	ExportsEnabled bool
}

// NewPracticeLogService constructs a PracticeLogService.
func NewPracticeLogService(params PracticeLogServiceParams) *PracticeLogService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := params.Engine
	if engine == nil {
		engine = analytics.New(analytics.DefaultConfig())
	}
	return &PracticeLogService{
		logs:      params.Logs,
		profiles:  params.Profiles,
		engine:    engine,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		exports:   params.ExportsEnabled,
		now:       time.Now,
	}
}

// Create validates the session, derives percent and scaled score, and appends it.
func (s *PracticeLogService) Create(ctx context.Context, uid string, req PracticeLogRequest) (*models.PracticeLogEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid practice log payload")
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.profiles.Find(ctx, uid); err != nil {
		return nil, err
	}

	scaled := s.engine.Scaler().Scale(req.RawScore, req.TotalQuestions)
	entry := &models.PracticeLogEntry{
		UID:            uid,
		Date:           date,
		Section:        req.Section,
		Subtopic:       strings.TrimSpace(req.Subtopic),
		Platform:       strings.TrimSpace(req.Platform),
		RawScore:       req.RawScore,
		TotalQuestions: req.TotalQuestions,
		Percent:        scaled.Percent,
		ScaledScore:    scaled.Scaled,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, internalError(err, "failed to save practice log")
	}
	s.metrics.RecordCreated("practice_log")
	_ = s.cache.Invalidate(ctx, DashboardPattern(uid))
	return entry, nil
}

// List returns the practice logs in insertion order, optionally narrowed to a date range.
func (s *PracticeLogService) List(ctx context.Context, uid string, query DateRangeQuery) ([]models.PracticeLogEntry, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListByUID(ctx, uid)
	if err != nil {
		return nil, internalError(err, "failed to list practice logs")
	}
	if logs == nil {
		logs = []models.PracticeLogEntry{}
	}
	return s.engine.FilterLogs(logs, filter), nil
}

// Export renders the caller's practice logs as CSV or PDF.
func (s *PracticeLogService) Export(ctx context.Context, uid, format string) (*ExportFile, error) {
	if !s.exports {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "exports are disabled")
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	profile, err := s.profiles.Find(ctx, uid)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListByUID(ctx, uid)
	if err != nil {
		return nil, internalError(err, "failed to list practice logs")
	}

	today := s.now().UTC().Format(dateLayout)
	payload, err := export.RendererFor(f).Render(practiceLogDataset(profile.Name, today, logs))
	if err != nil {
		return nil, internalError(err, "failed to render export")
	}
	s.logger.Info("practice logs exported", zap.String("uid", uid), zap.String("format", string(f)), zap.Int("rows", len(logs)))
	return &ExportFile{
		Filename:    f.Filename("practice_logs_" + today),
		ContentType: f.ContentType(),
		Payload:     payload,
	}, nil
}

func practiceLogDataset(name, today string, logs []models.PracticeLogEntry) export.Dataset {
	rows := make([][]string, 0, len(logs))
	for _, log := range logs {
		date := ""
		if log.Date != nil {
			date = log.Date.Format(dateLayout)
		}
		rows = append(rows, []string{
			date,
			log.Section.Label(),
			log.Subtopic,
			log.Platform,
			strconv.Itoa(log.RawScore),
			strconv.Itoa(log.TotalQuestions),
			strconv.Itoa(log.Percent),
			strconv.Itoa(log.ScaledScore),
		})
	}
	return export.Dataset{
		Title:    "Practice Logs",
		Subtitle: strings.TrimSpace(name + " - exported " + today),
		Headers:  []string{"Date", "Section", "Subtopic", "Platform", "Raw", "Total", "%", "Scaled"},
		Rows:     rows,
	}
}
