package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appctx "robotpacc/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"

	ContextRequestID = "request_id"
	ContextTraceID   = "trace_id"
)

func headerOrNew(c *gin.Context, name string) string {
	if v := c.GetHeader(name); v != "" {
		return v
	}
	return uuid.NewString()
}

// Trace attaches request and trace ids to the request context, the gin
// context and the response headers. Caller supplied ids are echoed back.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := &appctx.TraceContext{
			TraceID:   headerOrNew(c, HeaderTraceID),
			RequestID: headerOrNew(c, HeaderRequestID),
			Origin:    appctx.OriginHTTP,
		}
		c.Request = c.Request.WithContext(appctx.WithTrace(c.Request.Context(), t))

		c.Set(ContextTraceID, t.TraceID)
		c.Set(ContextRequestID, t.RequestID)
		c.Header(HeaderTraceID, t.TraceID)
		c.Header(HeaderRequestID, t.RequestID)

		c.Next()
	}
}
