package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

// AuditWriter persists audit entries.
type AuditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// Audit records an audit log entry after every successful request. Write
// failures are logged and never change the response.
func Audit(writer AuditWriter, logger *zap.Logger, action, resource string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if writer == nil || c.Writer.Status() >= 400 {
			return
		}

		var actor *string
		if claims, ok := Claims(c); ok {
			name := claims.Name
			if claims.UserID != "" {
				name = claims.UserID
			}
			actor = &name
		}

		var resourceID *string
		if id := c.Param("id"); id != "" {
			resourceID = &id
		}

		details, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"query":   c.Request.URL.RawQuery,
			"latency": time.Since(start).Milliseconds(),
		})

		if err := writer.Create(c.Request.Context(), &models.AuditLog{
			Actor:      actor,
			Action:     action,
			Resource:   resource,
			ResourceID: resourceID,
			Details:    details,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
		}); err != nil {
			logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
		}
	}
}
