package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/metrics"
)

// PrometheusMiddleware 记录请求量与耗时.标签用注册路由模板而非原始
// URL，未匹配的请求统一归并到 unmatched，避免标签基数失控.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		observeRequest(c, time.Since(start))
	}
}

func observeRequest(c *gin.Context, elapsed time.Duration) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}

	method := c.Request.Method

	metrics.RequestCounter.WithLabelValues(method, route).Inc()
	metrics.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
