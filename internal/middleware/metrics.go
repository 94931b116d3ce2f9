package middleware

import (
	"strconv"
	"time"

	"collab_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware пишет счетчик и латентность по шаблону маршрута, а не по пути
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
