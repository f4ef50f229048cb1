package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

type extracurricularStore interface {
	Create(ctx context.Context, entry *models.Extracurricular) error
	Update(ctx context.Context, entry *models.Extracurricular) error
	Delete(ctx context.Context, uid, id string) error
	FindByID(ctx context.Context, uid, id string) (*models.Extracurricular, error)
	ListByUID(ctx context.Context, uid string) ([]models.Extracurricular, error)
}

type categoryTargetStore interface {
	UpdateCategoryTargets(ctx context.Context, uid string, targets models.CategoryTargets) error
}

// ExtracurricularRequest creates or replaces a tracked activity.
type ExtracurricularRequest struct {
	Category     models.Category `json:"type" validate:"required,oneof=clinical research leadership community"`
	Organization string          `json:"organization" validate:"required,max=200"`
	Role         string          `json:"role" validate:"max=120"`
	StartDate    string          `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string          `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Hours        float64         `json:"hours" validate:"gte=0"`
	Description  string          `json:"description" validate:"max=2000"`
}

// ExtracurricularService manages tracked activities and the per-category hour targets.
type ExtracurricularService struct {
	entries   extracurricularStore
	targets   categoryTargetStore
	profiles  profileFinder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// ExtracurricularServiceParams groups constructor dependencies.
type ExtracurricularServiceParams struct {
	Entries   extracurricularStore
	Targets   categoryTargetStore
	Profiles  profileFinder
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewExtracurricularService constructs an ExtracurricularService.
func NewExtracurricularService(params ExtracurricularServiceParams) *ExtracurricularService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtracurricularService{
		entries:   params.Entries,
		targets:   params.Targets,
		profiles:  params.Profiles,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
	}
}

// List returns the caller's tracked activities, newest first.
func (s *ExtracurricularService) List(ctx context.Context, uid string) ([]models.Extracurricular, error) {
	entries, err := s.entries.ListByUID(ctx, uid)
	if err != nil {
		return nil, internalError(err, "failed to list extracurriculars")
	}
	if entries == nil {
		entries = []models.Extracurricular{}
	}
	return entries, nil
}

// Get returns one tracked activity.
func (s *ExtracurricularService) Get(ctx context.Context, uid, id string) (*models.Extracurricular, error) {
	entry, err := s.entries.FindByID(ctx, uid, id)
	if err != nil {
		return nil, notFoundOr(err, "extracurricular not found", "failed to load extracurricular")
	}
	return entry, nil
}

// Create records a tracked activity.
func (s *ExtracurricularService) Create(ctx context.Context, uid string, req ExtracurricularRequest) (*models.Extracurricular, error) {
	entry, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.profiles.Find(ctx, uid); err != nil {
		return nil, err
	}
	entry.UID = uid
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, internalError(err, "failed to save extracurricular")
	}
	s.metrics.RecordCreated("extracurricular")
	_ = s.cache.Invalidate(ctx, DashboardPattern(uid))
	return entry, nil
}

// Update replaces the mutable fields of a tracked activity.
func (s *ExtracurricularService) Update(ctx context.Context, uid, id string, req ExtracurricularRequest) (*models.Extracurricular, error) {
	next, err := s.build(req)
	if err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	current.Category = next.Category
	current.Organization = next.Organization
	current.Role = next.Role
	current.StartDate = next.StartDate
	current.EndDate = next.EndDate
	current.Hours = next.Hours
	current.Description = next.Description
	if err := s.entries.Update(ctx, current); err != nil {
		return nil, notFoundOr(err, "extracurricular not found", "failed to update extracurricular")
	}
	_ = s.cache.Invalidate(ctx, DashboardPattern(uid))
	return current, nil
}

// Delete removes a tracked activity.
func (s *ExtracurricularService) Delete(ctx context.Context, uid, id string) error {
	if err := s.entries.Delete(ctx, uid, id); err != nil {
		return notFoundOr(err, "extracurricular not found", "failed to delete extracurricular")
	}
	_ = s.cache.Invalidate(ctx, DashboardPattern(uid))
	return nil
}

// Targets returns the caller's per-category hour targets with defaults filled in.
func (s *ExtracurricularService) Targets(ctx context.Context, uid string) (models.CategoryTargets, error) {
	profile, err := s.profiles.Find(ctx, uid)
	if err != nil {
		return nil, err
	}
	return profile.CategoryTargets, nil
}

// UpdateTargets merges the provided categories over the stored targets.
func (s *ExtracurricularService) UpdateTargets(ctx context.Context, uid string, patch models.CategoryTargets) (models.CategoryTargets, error) {
	for category, hours := range patch {
		if !category.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown extracurricular category "+string(category))
		}
		if hours < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, string(category)+" target must not be negative")
		}
	}
	current, err := s.Targets(ctx, uid)
	if err != nil {
		return nil, err
	}
	merged := current.Merge(patch)
	if err := s.targets.UpdateCategoryTargets(ctx, uid, merged); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileNotFound
		}
		return nil, internalError(err, "failed to update extracurricular targets")
	}
	_ = s.cache.Invalidate(ctx, DashboardPattern(uid))
	return merged, nil
}

func (s *ExtracurricularService) build(req ExtracurricularRequest) (*models.Extracurricular, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid extracurricular payload")
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	return &models.Extracurricular{
		Category:     req.Category,
		Organization: strings.TrimSpace(req.Organization),
		Role:         strings.TrimSpace(req.Role),
		StartDate:    start,
		EndDate:      end,
		Hours:        req.Hours,
		Description:  strings.TrimSpace(req.Description),
	}, nil
}

func notFoundOr(err error, notFound, internal string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return internalError(err, internal)
}
