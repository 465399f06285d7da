package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/pkg/logctx"
)

// AccessLogMiddleware logs one line per request with the request-scoped logger. It runs after
// the handler, so user_id is included for authenticated routes.
func AccessLogMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if code, ok := c.Get(KeyResponseCode); ok {
			fields = append(fields, "code", code)
		}
		logctx.FromGin(c, base).Infow("http_access", fields...)
	}
}

// KeyResponseCode is set by handlers to the envelope code they answered with.
const KeyResponseCode = "response_code"
