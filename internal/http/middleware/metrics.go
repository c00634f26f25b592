package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/recipebook-backend/internal/observability"
)

// Metrics instruments HTTP request counts/latency when metrics are enabled.
// Routes in skip (long-lived streams) are recorded with zero latency and never
// count as inflight.
func Metrics(m *observability.Metrics, skip ...string) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	streaming := make(map[string]bool, len(skip))
	for _, s := range skip {
		streaming[s] = true
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if streaming[route] {
			c.Next()
			m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), 0)
			return
		}

		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
