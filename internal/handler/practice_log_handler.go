package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

type practiceLogService interface {
	Create(ctx context.Context, uid string, req service.PracticeLogRequest) (*models.PracticeLogEntry, error)
	List(ctx context.Context, uid string, query service.DateRangeQuery) ([]models.PracticeLogEntry, error)
	Export(ctx context.Context, uid, format string) (*service.ExportFile, error)
}

// PracticeLogHandler exposes practice log endpoints.
type PracticeLogHandler struct {
	service practiceLogService
}

// NewPracticeLogHandler builds a new handler.
func NewPracticeLogHandler(service practiceLogService) *PracticeLogHandler {
	return &PracticeLogHandler{service: service}
}

// Create godoc
// @Summary Log a practice session
// @Tags PracticeLogs
// @Accept json
// @Produce json
// @Param payload body service.PracticeLogRequest true "Practice session"
// @Success 201 {object} response.Envelope
// @Router /profile/practice-logs [post]
func (h *PracticeLogHandler) Create(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req service.PracticeLogRequest
	if !bindJSON(c, &req, "invalid practice log payload") {
		return
	}
	entry, err := h.service.Create(c.Request.Context(), identity.UID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// List godoc
// @Summary List the caller's practice logs in insertion order
// @Tags PracticeLogs
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /profile/practice-logs [get]
func (h *PracticeLogHandler) List(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	h.list(c, identity.UID)
}

// Shared godoc
// @Summary Practice logs of a profile shared with the caller
// @Tags Sharing
// @Produce json
// @Param uid path string true "Owner uid"
// @Success 200 {object} response.Envelope
// @Router /profiles/{uid}/public-practice-logs [get]
func (h *PracticeLogHandler) Shared(c *gin.Context) {
	h.list(c, c.Param("uid"))
}

func (h *PracticeLogHandler) list(c *gin.Context, uid string) {
	logs, err := h.service.List(c.Request.Context(), uid, rangeQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}

// Export godoc
// @Summary Download the caller's practice logs
// @Tags PracticeLogs
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /profile/practice-logs/export [get]
func (h *PracticeLogHandler) Export(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		return
	}
	file, err := h.service.Export(c.Request.Context(), identity.UID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
