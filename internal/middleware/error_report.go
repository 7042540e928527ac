package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/observability"
	"github.com/noah-isme/class-scheduler-api/pkg/middleware/requestid"
)

// ErrorReporter forwards the errors of 5xx responses to Sentry. A nil hub
// means the process-wide hub.
func ErrorReporter(hub *sentry.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError || len(c.Errors) == 0 {
			return
		}
		base := hub
		if base == nil {
			base = sentry.CurrentHub()
		}
		local := base.Clone()
		local.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("method", c.Request.Method)
			scope.SetTag("route", c.FullPath())
			if id := requestid.Value(c); id != "" {
				scope.SetTag("request_id", id)
			}
		})
		for _, ginErr := range c.Errors {
			observability.CaptureErr(local, ginErr.Err)
		}
	}
}
