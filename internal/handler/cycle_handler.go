package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

type cycleService interface {
	Create(ctx context.Context, uid string, req service.CycleRequest) (*models.ApplicationCycle, error)
	List(ctx context.Context, uid string) ([]models.ApplicationCycle, error)
}

// CycleHandler exposes application cycle endpoints.
type CycleHandler struct {
	service cycleService
}

// NewCycleHandler builds a new handler.
func NewCycleHandler(service cycleService) *CycleHandler {
	return &CycleHandler{service: service}
}

// Create godoc
// @Summary Record an application cycle
// @Tags ApplicationCycles
// @Accept json
// @Produce json
// @Param payload body service.CycleRequest true "Cycle"
// @Success 201 {object} response.Envelope
// @Router /profile/application-cycles [post]
func (h *CycleHandler) Create(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req service.CycleRequest
	if !bindJSON(c, &req, "invalid application cycle payload") {
		return
	}
	cycle, err := h.service.Create(c.Request.Context(), identity.UID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cycle)
}

// List godoc
// @Summary List application cycles
// @Tags ApplicationCycles
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/application-cycles [get]
func (h *CycleHandler) List(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	cycles, err := h.service.List(c.Request.Context(), identity.UID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cycles, nil)
}
