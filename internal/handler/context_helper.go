package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/middleware"
	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/internal/service"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

// identityFromContext returns the verified caller or writes 401.
func identityFromContext(c *gin.Context) (*models.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return identity, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}

// rangeQuery reads the optional from/to practice log bounds. Parsing happens in the service.
func rangeQuery(c *gin.Context) service.DateRangeQuery {
	return service.DateRangeQuery{From: c.Query("from"), To: c.Query("to")}
}

func respondWithMeta(c *gin.Context, data interface{}, cacheHit bool) {
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, data, nil, middleware.ExtractMeta(c))
}
