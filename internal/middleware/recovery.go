package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

const panicKey = "panic"

// Recovery turns a panic into a 500 envelope. The panic value is kept on the
// context so ReportServerErrors can attach it.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		msg := fmt.Sprint(recovered)
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			slog.String("panic", msg),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", RequestIDFrom(c)),
			slog.String("stack", string(debug.Stack())),
		)
		c.Set(panicKey, msg)
		AbortWithError(c, http.StatusInternalServerError, "internal server error")
	})
}
