package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	appErrors "github.com/noah-isme/mcat-progress-api/pkg/errors"
	"github.com/noah-isme/mcat-progress-api/pkg/logger"
	"github.com/noah-isme/mcat-progress-api/pkg/response"
)

// ContextIdentityKey is the gin context key storing the verified identity.
const ContextIdentityKey = "identity"

// TokenValidator verifies a bearer token and returns the identity it carries.
type TokenValidator interface {
	ValidateToken(token string) (*models.Identity, error)
}

// ShareChecker decides whether a viewer may read another user's shared views.
type ShareChecker interface {
	CanView(ctx context.Context, ownerUID string, viewer models.Identity) (bool, error)
}

// Auth requires a valid bearer token and attaches its identity to the request.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		identity, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, identity)
		c.Set(logger.ContextUIDKey, identity.UID)
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by Auth.
func CurrentIdentity(c *gin.Context) (*models.Identity, bool) {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*models.Identity)
	return identity, ok && identity != nil
}

// SharedAccess lets the owner and allow-listed viewers through to routes keyed by :uid.
func SharedAccess(checker ShareChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		owner := c.Param("uid")
		allowed, err := checker.CanView(c.Request.Context(), owner, *identity)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "profile is not shared with you"))
			c.Abort()
			return
		}
		c.Next()
	}
}
