package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "hoteldash/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Trace middleware adds request tracing context.
// Extracts or generates trace IDs for distributed tracing.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := appctx.NewTraceContext()
		if requestID := c.GetHeader(HeaderRequestID); requestID != "" {
			trace.RequestID = requestID
		}
		if traceID := c.GetHeader(HeaderTraceID); traceID != "" {
			trace.TraceID = traceID
		}

		ctx := appctx.WithTrace(c.Request.Context(), trace)
		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("trace_id", trace.TraceID)
		c.Set("request_id", trace.RequestID)

		c.Header(HeaderRequestID, trace.RequestID)
		c.Header(HeaderTraceID, trace.TraceID)

		c.Next()
	}
}
