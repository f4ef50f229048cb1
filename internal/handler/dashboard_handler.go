package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/dto"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

type dashboardService interface {
	Build(ctx context.Context, uid string, query service.DateRangeQuery) (*dto.DashboardResponse, bool, error)
}

// DashboardHandler wires the dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Mine godoc
// @Summary Analytics dashboard for the caller
// @Tags Dashboard
// @Produce json
// @Param from query string false "Practice log start date (YYYY-MM-DD)"
// @Param to query string false "Practice log end date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /profile/dashboard [get]
func (h *DashboardHandler) Mine(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	h.build(c, identity.UID)
}

// Shared godoc
// @Summary Analytics dashboard of a profile shared with the caller
// @Tags Sharing
// @Produce json
// @Param uid path string true "Owner uid"
// @Param from query string false "Practice log start date (YYYY-MM-DD)"
// @Param to query string false "Practice log end date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /profiles/{uid}/dashboard [get]
func (h *DashboardHandler) Shared(c *gin.Context) {
	h.build(c, c.Param("uid"))
}

func (h *DashboardHandler) build(c *gin.Context, uid string) {
	dashboard, cacheHit, err := h.service.Build(c.Request.Context(), uid, rangeQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondWithMeta(c, dashboard, cacheHit)
}
