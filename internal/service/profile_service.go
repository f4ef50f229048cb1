package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/dto"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

type profileStore interface {
	FindByUID(ctx context.Context, uid string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile, setup []models.SetupActivity) error
	ListSetupActivities(ctx context.Context, uid string) ([]models.SetupActivity, error)
	UpdateTarget(ctx context.Context, uid string, target models.Target) error
	MarkComplete(ctx context.Context, uid string) error
	Delete(ctx context.Context, uid string) error
}

type practiceLogLister interface {
	ListByUID(ctx context.Context, uid string) ([]models.PracticeLogEntry, error)
}

type attemptLister interface {
	ListByUID(ctx context.Context, uid string) ([]models.OfficialAttempt, error)
}

type extracurricularLister interface {
	ListByUID(ctx context.Context, uid string) ([]models.Extracurricular, error)
}

type cycleLister interface {
	ListByUID(ctx context.Context, uid string) ([]models.ApplicationCycle, error)
}

// TargetRequest sets the per-section MCAT target. Zero leaves a section without a target.
type TargetRequest struct {
	ChemPhys   int `json:"chemPhys" validate:"gte=0"`
	CARS       int `json:"cars" validate:"gte=0"`
	BioBiochem int `json:"bioBiochem" validate:"gte=0"`
	PsychSoc   int `json:"psychSoc" validate:"gte=0"`
}

// SetupActivityRequest is one extracurricular entered during profile setup.
type SetupActivityRequest struct {
	Organization string  `json:"organization" validate:"required,max=200"`
	StartDate    string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Hours        float64 `json:"hours" validate:"gte=0"`
}

// ProfileUpsertRequest creates or updates the caller's profile. Name and email come from the
// verified identity and are never changed after creation.
type ProfileUpsertRequest struct {
	Zipcode          string                                     `json:"zipcode" validate:"omitempty,max=10"`
	GPA              models.GPA                                 `json:"gpa"`
	Degrees          models.Degrees                             `json:"degrees"`
	MCATTarget       *TargetRequest                             `json:"mcatTarget"`
	Extracurriculars map[models.Category][]SetupActivityRequest `json:"extracurriculars" validate:"omitempty,dive,dive"`
}

// ProfileServiceParams groups constructor dependencies.
type ProfileServiceParams struct {
	Profiles         profileStore
	PracticeLogs     practiceLogLister
	Attempts         attemptLister
	Extracurriculars extracurricularLister
	Cycles           cycleLister
	Cache            *CacheService
	Validator        *validator.Validate
	Logger           *zap.Logger
	ScaleMin         int
	ScaleMax         int
	DefaultHours     float64
}

// ProfileService manages the profile record and loads it with every owned collection.
type ProfileService struct {
	profiles         profileStore
	practiceLogs     practiceLogLister
	attempts         attemptLister
	extracurriculars extracurricularLister
	cycles           cycleLister
	cache            *CacheService
	validator        *validator.Validate
	logger           *zap.Logger
	scaleMin         int
	scaleMax         int
	defaultHours     float64
}

// NewProfileService constructs a ProfileService.
func NewProfileService(params ProfileServiceParams) *ProfileService {
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
	hours := params.DefaultHours
	if hours <= 0 {
		hours = models.DefaultCategoryHours
	}
	return &ProfileService{
		profiles:         params.Profiles,
		practiceLogs:     params.PracticeLogs,
		attempts:         params.Attempts,
		extracurriculars: params.Extracurriculars,
		cycles:           params.Cycles,
		cache:            params.Cache,
		validator:        validate,
		logger:           logger,
		scaleMin:         scaleMin,
		scaleMax:         scaleMax,
		defaultHours:     hours,
	}
}

// Find returns the bare profile record.
func (s *ProfileService) Find(ctx context.Context, uid string) (*models.Profile, error) {
	profile, err := s.profiles.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileNotFound
		}
		return nil, internalError(err, "failed to load profile")
	}
	if len(profile.CategoryTargets) == 0 {
		profile.CategoryTargets = models.DefaultCategoryTargets(s.defaultHours)
	}
	return profile, nil
}

// Load returns the profile with every owned collection attached.
func (s *ProfileService) Load(ctx context.Context, uid string) (*models.Profile, error) {
	profile, err := s.Find(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile.SetupActivities, err = s.profiles.ListSetupActivities(ctx, uid); err != nil {
		return nil, internalError(err, "failed to load profile extracurriculars")
	}
	if profile.PracticeLogs, err = s.practiceLogs.ListByUID(ctx, uid); err != nil {
		return nil, internalError(err, "failed to load practice logs")
	}
	if profile.Attempts, err = s.attempts.ListByUID(ctx, uid); err != nil {
		return nil, internalError(err, "failed to load mcat attempts")
	}
	if profile.Extracurriculars, err = s.extracurriculars.ListByUID(ctx, uid); err != nil {
		return nil, internalError(err, "failed to load extracurriculars")
	}
	if profile.Cycles, err = s.cycles.ListByUID(ctx, uid); err != nil {
		return nil, internalError(err, "failed to load application cycles")
	}
	return profile, nil
}

// Get loads the caller's profile and marks it complete the first time it is fetched.
func (s *ProfileService) Get(ctx context.Context, uid string) (*models.Profile, error) {
	profile, err := s.Load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !profile.ProfileComplete {
		if err := s.profiles.MarkComplete(ctx, uid); err != nil {
			s.logger.Warn("failed to mark profile complete", zap.String("uid", uid), zap.Error(err))
		} else {
			profile.ProfileComplete = true
		}
	}
	return profile, nil
}

// Upsert creates the caller's profile or updates its mutable fields. It reports whether the
// profile was created.
func (s *ProfileService) Upsert(ctx context.Context, identity models.Identity, req ProfileUpsertRequest) (*models.Profile, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, validationError(err, "invalid profile payload")
	}

	existing, err := s.profiles.FindByUID(ctx, identity.UID)
	created := false
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if strings.TrimSpace(identity.Email) == "" || strings.TrimSpace(identity.Name) == "" {
			return nil, false, appErrors.Clone(appErrors.ErrValidation, "identity must carry name and email to create a profile")
		}
		existing = &models.Profile{
			UID:             identity.UID,
			Email:           identity.Email,
			Name:            identity.Name,
			CategoryTargets: models.DefaultCategoryTargets(s.defaultHours),
		}
		created = true
	case err != nil:
		return nil, false, internalError(err, "failed to load profile")
	}

	existing.Zipcode = strings.TrimSpace(req.Zipcode)
	existing.GPA = req.GPA
	existing.Degrees = req.Degrees
	if req.MCATTarget != nil {
		target, err := s.target(*req.MCATTarget)
		if err != nil {
			return nil, false, err
		}
		existing.Target = target
	}

	var setup []models.SetupActivity
	if req.Extracurriculars != nil {
		if setup, err = setupActivities(req.Extracurriculars); err != nil {
			return nil, false, err
		}
	}

	if err := s.profiles.Upsert(ctx, existing, setup); err != nil {
		return nil, false, internalError(err, "failed to save profile")
	}
	existing.SetupActivities = setup
	s.invalidate(ctx, identity.UID)
	return existing, created, nil
}

// UpdateTarget replaces the caller's MCAT target; the total is recomputed.
func (s *ProfileService) UpdateTarget(ctx context.Context, uid string, req TargetRequest) (*models.Target, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid target payload")
	}
	target, err := s.target(req)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateTarget(ctx, uid, target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileNotFound
		}
		return nil, internalError(err, "failed to update target")
	}
	s.invalidate(ctx, uid)
	return &target, nil
}

// Delete removes the caller's profile and everything it owns.
func (s *ProfileService) Delete(ctx context.Context, uid string) error {
	if err := s.profiles.Delete(ctx, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrProfileNotFound
		}
		return internalError(err, "failed to delete profile")
	}
	s.invalidate(ctx, uid)
	s.logger.Info("profile deleted", zap.String("uid", uid))
	return nil
}

// PublicProfile returns the subset of a profile exposed to allow-listed viewers.
func (s *ProfileService) PublicProfile(ctx context.Context, uid string) (*dto.PublicProfile, error) {
	profile, err := s.Load(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &dto.PublicProfile{
		Name:            profile.Name,
		MCATTarget:      profile.Target,
		MCATAttempts:    profile.Attempts,
		PracticeLogs:    profile.PracticeLogs,
		ProfileComplete: profile.ProfileComplete,
	}, nil
}

func (s *ProfileService) target(req TargetRequest) (models.Target, error) {
	target := models.Target{ChemPhys: req.ChemPhys, CARS: req.CARS, BioBiochem: req.BioBiochem, PsychSoc: req.PsychSoc}
	for _, section := range models.Sections {
		v := target.Section(section)
		if v != 0 && (v < s.scaleMin || v > s.scaleMax) {
			return models.Target{}, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("%s target must be between %d and %d", section, s.scaleMin, s.scaleMax))
		}
	}
	return target.Recompute(), nil
}

func (s *ProfileService) invalidate(ctx context.Context, uid string) {
	_ = s.cache.Invalidate(ctx, DashboardPattern(uid))
}

func setupActivities(in map[models.Category][]SetupActivityRequest) ([]models.SetupActivity, error) {
	out := make([]models.SetupActivity, 0)
	for _, category := range models.Categories {
		for _, item := range in[category] {
			start, err := parseDate("startDate", item.StartDate)
			if err != nil {
				return nil, err
			}
			end, err := parseDate("endDate", item.EndDate)
			if err != nil {
				return nil, err
			}
			out = append(out, models.SetupActivity{
				Category:     category,
				Organization: strings.TrimSpace(item.Organization),
				StartDate:    start,
				EndDate:      end,
				Hours:        item.Hours,
			})
		}
	}
	for category := range in {
		if !category.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown extracurricular category %q", category))
		}
	}
	return out, nil
}
