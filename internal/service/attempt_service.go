package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

type attemptStore interface {
	Create(ctx context.Context, attempt *models.OfficialAttempt) error
	Update(ctx context.Context, attempt *models.OfficialAttempt) error
	FindByID(ctx context.Context, uid, id string) (*models.OfficialAttempt, error)
	ListByUID(ctx context.Context, uid string) ([]models.OfficialAttempt, error)
}

// AttemptRequest records an official attempt. Omitted section scores are stored as absent.
type AttemptRequest struct {
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ChemPhys    *int   `json:"chemPhys"`
	CARS        *int   `json:"cars"`
	BioBiochem  *int   `json:"bioBiochem"`
	PsychSoc    *int   `json:"psychSoc"`
	PrepDetails string `json:"prepDetails" validate:"max=2000"`
}

func (r AttemptRequest) scores() models.AttemptScores {
	return models.AttemptScores{ChemPhys: r.ChemPhys, CARS: r.CARS, BioBiochem: r.BioBiochem, PsychSoc: r.PsychSoc}
}

// AttemptService manages official MCAT attempts.
type AttemptService struct {
	attempts  attemptStore
	profiles  profileFinder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	scaleMin  int
	scaleMax  int
}

// AttemptServiceParams groups constructor dependencies.
type AttemptServiceParams struct {
	Attempts  attemptStore
	Profiles  profileFinder
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	ScaleMin  int
	ScaleMax  int
}

// NewAttemptService constructs an AttemptService.
func NewAttemptService(params AttemptServiceParams) *AttemptService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scaleMin, scaleMax := params.ScaleMin, params.ScaleMax
	if scaleMin <= 0 || scaleMax <= scaleMin {
		scaleMin, scaleMax = 118, 132
	}
	return &AttemptService{
		attempts:  params.Attempts,
		profiles:  params.Profiles,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		scaleMin:  scaleMin,
		scaleMax:  scaleMax,
	}
}

// Create appends an official attempt with its total recomputed.
func (s *AttemptService) Create(ctx context.Context, uid string, req AttemptRequest) (*models.OfficialAttempt, error) {
	attempt, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.profiles.Find(ctx, uid); err != nil {
		return nil, err
	}
	attempt.UID = uid
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, internalError(err, "failed to save mcat attempt")
	}
	s.metrics.RecordCreated("mcat_attempt")
	_ = s.cache.Invalidate(ctx, DashboardPattern(uid))
	return attempt, nil
}

// List returns the caller's attempts in insertion order.
func (s *AttemptService) List(ctx context.Context, uid string) ([]models.OfficialAttempt, error) {
	attempts, err := s.attempts.ListByUID(ctx, uid)
	if err != nil {
		return nil, internalError(err, "failed to list mcat attempts")
	}
	if attempts == nil {
		attempts = []models.OfficialAttempt{}
	}
	return attempts, nil
}

// Update replaces the date, scores and prep details of an existing attempt.
func (s *AttemptService) Update(ctx context.Context, uid, id string, req AttemptRequest) (*models.OfficialAttempt, error) {
	next, err := s.build(req)
	if err != nil {
		return nil, err
	}
	current, err := s.attempts.FindByID(ctx, uid, id)
	if err != nil {
		return nil, notFoundOr(err, "mcat attempt not found", "failed to load mcat attempt")
	}
	current.Date = next.Date
	current.PrepDetails = next.PrepDetails
	current.AttemptScores = next.AttemptScores
	if err := s.attempts.Update(ctx, current); err != nil {
		return nil, notFoundOr(err, "mcat attempt not found", "failed to update mcat attempt")
	}
	_ = s.cache.Invalidate(ctx, DashboardPattern(uid))
	return current, nil
}

func (s *AttemptService) build(req AttemptRequest) (*models.OfficialAttempt, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid mcat attempt payload")
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	scores := req.scores()
	for _, section := range models.Sections {
		v := scores.Section(section)
		if v != 0 && (v < s.scaleMin || v > s.scaleMax) {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("%s score must be between %d and %d", section, s.scaleMin, s.scaleMax))
		}
	}
	return &models.OfficialAttempt{
		Date:          date,
		PrepDetails:   strings.TrimSpace(req.PrepDetails),
		AttemptScores: scores.Recompute(),
	}, nil
}
