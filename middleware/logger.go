package middleware

import (
	"log/slog"
	"time"

	"food-ordering-api/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger attaches a request-scoped logger carrying a request id and
// logs one line per completed request.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(HeaderRequestID, rid)

		l := base.With(
			"request_id", rid,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_ip", c.ClientIP(),
		)
		c.Request = c.Request.WithContext(logging.IntoContext(c.Request.Context(), l))

		start := time.Now()
		c.Next()
		dur := time.Since(start)
		status := c.Writer.Status()

		switch {
		case status >= 500:
			l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds(), "errors", c.Errors.String())
		case status >= 400:
			l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
		default:
			l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Writer.Size())
		}
	}
}
