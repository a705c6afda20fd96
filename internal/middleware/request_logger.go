package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bond-optimizer/internal/logger"
	"github.com/guttosm/bond-optimizer/internal/service"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request once the handler chain is
// done, and persists the same entry through svc when it is set.
func RequestLogger(svc service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		level := statusLevel(status)
		logger.FromContext(c.Request.Context()).WithLevel(level).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Dur("latency", elapsed).
			Int("bytes", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Str("subject", GetSubject(c)).
			Msg("HTTP request")

		if svc != nil {
			entry := requestEntry(c, level, "HTTP request")
			entry.StatusCode = status
			entry.DurationMS = elapsed.Milliseconds()
			dispatch(svc, entry)
		}
	}
}

// statusLevel maps 5xx to error and 4xx to warn.
func statusLevel(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
