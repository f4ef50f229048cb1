package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/dto"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

type profileService interface {
	Get(ctx context.Context, uid string) (*models.Profile, error)
	Upsert(ctx context.Context, identity models.Identity, req service.ProfileUpsertRequest) (*models.Profile, bool, error)
	UpdateTarget(ctx context.Context, uid string, req service.TargetRequest) (*models.Target, error)
	Delete(ctx context.Context, uid string) error
	PublicProfile(ctx context.Context, uid string) (*dto.PublicProfile, error)
}

// ProfileHandler exposes the caller's profile and its shared read-only view.
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler builds a new handler.
func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	profile, err := h.service.Get(c.Request.Context(), identity.UID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Upsert godoc
// @Summary Create or update the caller's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body service.ProfileUpsertRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /profile [post]
func (h *ProfileHandler) Upsert(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req service.ProfileUpsertRequest
	if !bindJSON(c, &req, "invalid profile payload") {
		return
	}
	profile, created, err := h.service.Upsert(c.Request.Context(), *identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if created {
		response.Created(c, profile)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// UpdateTarget godoc
// @Summary Replace the caller's MCAT target
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body service.TargetRequest true "Section targets"
// @Success 200 {object} response.Envelope
// @Router /profile/target [put]
func (h *ProfileHandler) UpdateTarget(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req service.TargetRequest
	if !bindJSON(c, &req, "invalid target payload") {
		return
	}
	target, err := h.service.UpdateTarget(c.Request.Context(), identity.UID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, target, nil)
}

// Delete godoc
// @Summary Delete the caller's profile and every owned record
// @Tags Profile
// @Success 204
// @Router /profile [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), identity.UID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Public godoc
// @Summary Read-only profile shared with the caller
// @Tags Sharing
// @Produce json
// @Param uid path string true "Owner uid"
// @Success 200 {object} response.Envelope
// @Router /profiles/{uid}/public-profile [get]
func (h *ProfileHandler) Public(c *gin.Context) {
	profile, err := h.service.PublicProfile(c.Request.Context(), c.Param("uid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}
