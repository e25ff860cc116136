package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/telemetry"
)

// ReportServerErrors forwards every 5xx response to the reporter.
func ReportServerErrors(reporter telemetry.Reporter) gin.HandlerFunc {
	if reporter == nil {
		reporter = telemetry.Nop{}
	}
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 500 {
			return
		}

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     status,
			"request_id": RequestIDFrom(c),
		}
		if userID, ok := UserIDFrom(c); ok {
			fields["user_id"] = userID.String()
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.String()
		}
		if p, ok := c.Get(panicKey); ok {
			fields["panic"] = p
		}
		reporter.Report(c.Request.Context(), "http.server_error", fields)
	}
}
