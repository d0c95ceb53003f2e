package httpmiddleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lohith114/Admin-attendance/internal/metrics"
)

// Metrics counts finished requests by route template and status code.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(route, c.Writer.Status())
	}
}

// AccessLog writes one line per finished request, skipping probe endpoints.
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	skip := map[string]bool{"/healthz": true, "/metrics": true}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if skip[c.Request.URL.Path] {
			return
		}
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", RequestIDFrom(c)),
		)
	}
}
