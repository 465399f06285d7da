package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/pkg/logctx"
)

// RequestLoggerMiddleware attaches a request-scoped logger carrying trace_id to gin.Context
// and to the request context, so services log with the same fields through logctx.FromCtx.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLogger := base
		if traceID := c.GetString(logctx.KeyTraceID); traceID != "" {
			reqLogger = base.With("trace_id", traceID)
		}
		c.Set(logctx.KeyLogger, reqLogger)
		c.Request = c.Request.WithContext(logctx.WithLogger(c.Request.Context(), reqLogger))
		c.Next()
	}
}
