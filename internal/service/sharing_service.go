package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/dto"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
)

type shareStore interface {
	UpdateSharedWith(ctx context.Context, uid string, emails []string) error
}

// SharingService manages the read-only share allow-list of a profile.
type SharingService struct {
	store     shareStore
	profiles  profileFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSharingService constructs a SharingService.
func NewSharingService(store shareStore, profiles profileFinder, validate *validator.Validate, logger *zap.Logger) *SharingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SharingService{store: store, profiles: profiles, validator: validate, logger: logger}
}

// Get returns the caller's allow-list.
func (s *SharingService) Get(ctx context.Context, uid string) (*dto.ShareResponse, error) {
	profile, err := s.profiles.Find(ctx, uid)
	if err != nil {
		return nil, err
	}
	emails := []string(profile.SharedWith)
	if emails == nil {
		emails = []string{}
	}
	return &dto.ShareResponse{SharedWith: emails}, nil
}

// Update replaces the caller's allow-list. Emails are lower-cased and de-duplicated.
func (s *SharingService) Update(ctx context.Context, uid string, req dto.ShareRequest) (*dto.ShareResponse, error) {
	emails := normalizeEmails(req.Emails)
	req.Emails = emails
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid share payload")
	}
	if err := s.store.UpdateSharedWith(ctx, uid, emails); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrProfileNotFound
		}
		return nil, internalError(err, "failed to update share list")
	}
	s.logger.Info("share list updated", zap.String("uid", uid), zap.Int("count", len(emails)))
	return &dto.ShareResponse{SharedWith: emails}, nil
}

// CanView reports whether the viewer may read the owner's shared views. Owners may always view
// their own profile.
func (s *SharingService) CanView(ctx context.Context, ownerUID string, viewer models.Identity) (bool, error) {
	if viewer.UID != "" && viewer.UID == ownerUID {
		return true, nil
	}
	profile, err := s.profiles.Find(ctx, ownerUID)
	if err != nil {
		return false, err
	}
	email := strings.ToLower(strings.TrimSpace(viewer.Email))
	if email == "" {
		return false, nil
	}
	for _, allowed := range profile.SharedWith {
		if strings.EqualFold(allowed, email) {
			return true, nil
		}
	}
	return false, nil
}

func normalizeEmails(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		email := strings.ToLower(strings.TrimSpace(raw))
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}
