package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/metrics"
)

// Metrics records request count, latency and size per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		method := c.Request.Method
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
		if c.Request.ContentLength > 0 {
			metrics.HTTPRequestSize.WithLabelValues(method, endpoint).Observe(float64(c.Request.ContentLength))
		}
	}
}
