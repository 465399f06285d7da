package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/natashawa225/sea-catering/pkg/logctx"
	"github.com/natashawa225/sea-catering/pkg/tool"
)

const HeaderRequestID = "X-Request-ID"

// TraceMiddleware assigns each request a trace id, taken from X-Request-ID when the client
// sends one. The id is stored on gin.Context and on the request context under logctx.KeyTraceID.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderRequestID)
		if traceID == "" || len(traceID) > 128 {
			traceID = tool.GenerateUUIDV7()
		}

		c.Set(logctx.KeyTraceID, traceID)
		c.Request = c.Request.WithContext(logctx.WithTraceID(c.Request.Context(), traceID))
		c.Writer.Header().Set(HeaderRequestID, traceID)
		c.Next()
	}
}
