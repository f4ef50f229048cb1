package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

type attemptService interface {
	Create(ctx context.Context, uid string, req service.AttemptRequest) (*models.OfficialAttempt, error)
	List(ctx context.Context, uid string) ([]models.OfficialAttempt, error)
	Update(ctx context.Context, uid, id string, req service.AttemptRequest) (*models.OfficialAttempt, error)
}

// AttemptHandler exposes official MCAT attempt endpoints.
type AttemptHandler struct {
	service attemptService
}

// NewAttemptHandler builds a new handler.
func NewAttemptHandler(service attemptService) *AttemptHandler {
	return &AttemptHandler{service: service}
}

// Create godoc
// @Summary Record an official MCAT attempt
// @Tags Attempts
// @Accept json
// @Produce json
// @Param payload body service.AttemptRequest true "Attempt"
// @Success 201 {object} response.Envelope
// @Router /profile/mcat-attempts [post]
func (h *AttemptHandler) Create(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req service.AttemptRequest
	if !bindJSON(c, &req, "invalid mcat attempt payload") {
		return
	}
	attempt, err := h.service.Create(c.Request.Context(), identity.UID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, attempt)
}

// List godoc
// @Summary List official MCAT attempts
// @Tags Attempts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/mcat-attempts [get]
func (h *AttemptHandler) List(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	attempts, err := h.service.List(c.Request.Context(), identity.UID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attempts, nil)
}

// Update godoc
// @Summary Edit an official MCAT attempt
// @Tags Attempts
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param payload body service.AttemptRequest true "Attempt"
// @Success 200 {object} response.Envelope
// @Router /profile/mcat-attempts/{id} [put]
func (h *AttemptHandler) Update(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req service.AttemptRequest
	if !bindJSON(c, &req, "invalid mcat attempt payload") {
		return
	}
	attempt, err := h.service.Update(c.Request.Context(), identity.UID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attempt, nil)
}
