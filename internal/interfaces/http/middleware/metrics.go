package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"dragon-roster.backend/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route template,
// so /person/:id is one series regardless of the id.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
