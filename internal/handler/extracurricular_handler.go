package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

type extracurricularService interface {
	List(ctx context.Context, uid string) ([]models.Extracurricular, error)
	Get(ctx context.Context, uid, id string) (*models.Extracurricular, error)
	Create(ctx context.Context, uid string, req service.ExtracurricularRequest) (*models.Extracurricular, error)
	Update(ctx context.Context, uid, id string, req service.ExtracurricularRequest) (*models.Extracurricular, error)
	Delete(ctx context.Context, uid, id string) error
	Targets(ctx context.Context, uid string) (models.CategoryTargets, error)
	UpdateTargets(ctx context.Context, uid string, patch models.CategoryTargets) (models.CategoryTargets, error)
}

// ExtracurricularHandler exposes tracked activities and category hour targets.
type ExtracurricularHandler struct {
	service extracurricularService
}

// NewExtracurricularHandler builds a new handler.
func NewExtracurricularHandler(service extracurricularService) *ExtracurricularHandler {
	return &ExtracurricularHandler{service: service}
}

// List godoc
// @Summary List tracked extracurriculars
// @Tags Extracurriculars
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/extracurriculars [get]
func (h *ExtracurricularHandler) List(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	entries, err := h.service.List(c.Request.Context(), identity.UID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Get godoc
// @Summary Get a tracked extracurricular
// @Tags Extracurriculars
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /profile/extracurriculars/{id} [get]
func (h *ExtracurricularHandler) Get(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	entry, err := h.service.Get(c.Request.Context(), identity.UID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Create godoc
// @Summary Track an extracurricular
// @Tags Extracurriculars
// @Accept json
// @Produce json
// @Param payload body service.ExtracurricularRequest true "Activity"
// @Success 201 {object} response.Envelope
// @Router /profile/extracurriculars [post]
func (h *ExtracurricularHandler) Create(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req service.ExtracurricularRequest
	if !bindJSON(c, &req, "invalid extracurricular payload") {
		return
	}
	entry, err := h.service.Create(c.Request.Context(), identity.UID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Replace a tracked extracurricular
// @Tags Extracurriculars
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param payload body service.ExtracurricularRequest true "Activity"
// @Success 200 {object} response.Envelope
// @Router /profile/extracurriculars/{id} [put]
func (h *ExtracurricularHandler) Update(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req service.ExtracurricularRequest
	if !bindJSON(c, &req, "invalid extracurricular payload") {
		return
	}
	entry, err := h.service.Update(c.Request.Context(), identity.UID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete a tracked extracurricular
// @Tags Extracurriculars
// @Param id path string true "Entry ID"
// @Success 204
// @Router /profile/extracurriculars/{id} [delete]
func (h *ExtracurricularHandler) Delete(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), identity.UID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Targets godoc
// @Summary Get per-category hour targets
// @Tags Extracurriculars
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/ecs-targets [get]
func (h *ExtracurricularHandler) Targets(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	targets, err := h.service.Targets(c.Request.Context(), identity.UID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, targets, nil)
}

// UpdateTargets godoc
// @Summary Merge per-category hour targets
// @Tags Extracurriculars
// @Accept json
// @Produce json
// @Param payload body models.CategoryTargets true "Category hours"
// @Success 200 {object} response.Envelope
// @Router /profile/ecs-targets [put]
func (h *ExtracurricularHandler) UpdateTargets(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var patch models.CategoryTargets
	if !bindJSON(c, &patch, "invalid targets payload") {
		return
	}
	targets, err := h.service.UpdateTargets(c.Request.Context(), identity.UID, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, targets, nil)
}
