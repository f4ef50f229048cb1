package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/models"
)

type cycleStore interface {
	Create(ctx context.Context, cycle *models.ApplicationCycle) error
	ListByUID(ctx context.Context, uid string) ([]models.ApplicationCycle, error)
}

// CycleRequest records one application cycle.
type CycleRequest struct {
	Year           int                   `json:"year" validate:"required,gte=1900,lte=2100"`
	SchoolsApplied []string              `json:"schoolsApplied" validate:"max=200,dive,required,max=200"`
	Outcomes       []models.CycleOutcome `json:"outcomes" validate:"max=200,dive"`
	Notes          string                `json:"notes" validate:"max=4000"`
}

// CycleService manages application cycles.
type CycleService struct {
	cycles    cycleStore
	profiles  profileFinder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCycleService constructs a CycleService.
func NewCycleService(cycles cycleStore, profiles profileFinder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CycleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CycleService{cycles: cycles, profiles: profiles, metrics: metrics, validator: validate, logger: logger}
}

// Create appends an application cycle.
func (s *CycleService) Create(ctx context.Context, uid string, req CycleRequest) (*models.ApplicationCycle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid application cycle payload")
	}
	if _, err := s.profiles.Find(ctx, uid); err != nil {
		return nil, err
	}
	schools := make([]string, 0, len(req.SchoolsApplied))
	for _, school := range req.SchoolsApplied {
		schools = append(schools, strings.TrimSpace(school))
	}
	outcomes := make(models.CycleOutcomes, 0, len(req.Outcomes))
	for _, outcome := range req.Outcomes {
		outcome.School = strings.TrimSpace(outcome.School)
		outcomes = append(outcomes, outcome)
	}
	cycle := &models.ApplicationCycle{
		UID:            uid,
		Year:           req.Year,
		SchoolsApplied: schools,
		Outcomes:       outcomes,
		Notes:          strings.TrimSpace(req.Notes),
	}
	if err := s.cycles.Create(ctx, cycle); err != nil {
		return nil, internalError(err, "failed to save application cycle")
	}
	s.metrics.RecordCreated("application_cycle")
	return cycle, nil
}

// List returns the caller's application cycles.
func (s *CycleService) List(ctx context.Context, uid string) ([]models.ApplicationCycle, error) {
	cycles, err := s.cycles.ListByUID(ctx, uid)
	if err != nil {
		return nil, internalError(err, "failed to list application cycles")
	}
	if cycles == nil {
		cycles = []models.ApplicationCycle{}
	}
	return cycles, nil
}
