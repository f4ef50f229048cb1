package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/dto"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

type sharingService interface {
	Get(ctx context.Context, uid string) (*dto.ShareResponse, error)
	Update(ctx context.Context, uid string, req dto.ShareRequest) (*dto.ShareResponse, error)
	CanView(ctx context.Context, ownerUID string, viewer models.Identity) (bool, error)
}

// SharingHandler manages the share allow-list.
type SharingHandler struct {
	service sharingService
}

// NewSharingHandler builds a new handler.
func NewSharingHandler(service sharingService) *SharingHandler {
	return &SharingHandler{service: service}
}

// Get godoc
// @Summary Get the caller's share allow-list
// @Tags Sharing
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile/share [get]
func (h *SharingHandler) Get(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), identity.UID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Update godoc
// @Summary Replace the caller's share allow-list
// @Tags Sharing
// @Accept json
// @Produce json
// @Param payload body dto.ShareRequest true "Viewer emails"
// @Success 200 {object} response.Envelope
// @Router /profile/share [put]
func (h *SharingHandler) Update(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req dto.ShareRequest
	if !bindJSON(c, &req, "invalid share payload") {
		return
	}
	resp, err := h.service.Update(c.Request.Context(), identity.UID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Check godoc
// @Summary Tell the caller whether a profile is shared with them
// @Tags Sharing
// @Produce json
// @Param uid path string true "Owner uid"
// @Success 200 {object} response.Envelope
// @Router /profiles/{uid}/shared [get]
func (h *SharingHandler) Check(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	allowed, err := h.service.CanView(c.Request.Context(), c.Param("uid"), *identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SharedAccessResponse{Allowed: allowed}, nil)
}
