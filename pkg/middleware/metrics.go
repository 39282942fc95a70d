package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

type RequestRecorder interface {
	RecordRequest(method, route string, status int, elapsed time.Duration)
}

// RequestMetrics feeds the route rollups. Routes are keyed by their registered pattern so
// path parameters do not explode the key space.
func RequestMetrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
