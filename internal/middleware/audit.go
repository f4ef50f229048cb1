package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/mcat-progress-api/internal/models"
	"github.com/noah-isme/mcat-progress-api/pkg/logger"
)

// AuditWriter persists audit rows.
type AuditWriter interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Audit records an audit row after every successful request on the route.
func Audit(writer AuditWriter, log *zap.Logger, action, resource string) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if writer == nil || status >= 400 {
			return
		}

		entry := &models.AuditLog{
			Action:    action,
			Resource:  resource,
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Status:    status,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if identity, ok := CurrentIdentity(c); ok {
			uid := identity.UID
			entry.UID = &uid
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		}

		if err := writer.Create(c.Request.Context(), entry); err != nil {
			logger.WithRequest(log, c).Warn("audit write failed", zap.String("action", action), zap.Error(err))
		}
	}
}
