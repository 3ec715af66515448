// Request logging middleware.

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
)

// LoggingConfig holds configuration for the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are paths that should not be logged (probes, scrapes).
	SkipPaths []string

	// SlowThreshold is the duration above which a request is considered
	// slow and logged at Warn level.
	SlowThreshold time.Duration
}

// DefaultLoggingConfig returns the standard logging configuration.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:     []string{"/healthz", "/readyz", "/metrics"},
		SlowThreshold: 3 * time.Second,
	}
}

// RequestLogging returns middleware that logs one line per completed request,
// leveled by status code and latency.
func RequestLogging(logger logging.Logger, config LoggingConfig) gin.HandlerFunc {
	log := logger.Named("http")
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		c.Next()

		took := time.Since(start)
		status := c.Writer.Status()
		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Duration("took", took),
			logging.Int("bytes", c.Writer.Size()),
			logging.String("remote", c.ClientIP()),
		}
		if id := c.Request.Header.Get("X-Request-ID"); id != "" {
			fields = append(fields, logging.String("request_id", id))
		}

		switch {
		case status >= 500:
			log.Error("request completed", fields...)
		case status >= 400:
			log.Warn("request completed", fields...)
		case config.SlowThreshold > 0 && took >= config.SlowThreshold:
			log.Warn("request completed (slow)", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
