package middleware

import (
	"time"

	"rps_webapp/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
		}
		if sid, ok := c.Get(SessionKey); ok {
			args = append(args, "session", sid)
		}

		switch {
		case status >= 500:
			logger.Error("http request", args...)
		case status >= 400:
			logger.Warn("http request", args...)
		default:
			logger.Debug("http request", args...)
		}
	}
}
