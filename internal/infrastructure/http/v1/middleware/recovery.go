// Package middleware holds the gin middleware chain of the v1 API.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"robotpacc/internal/core/apperror"
	"robotpacc/pkg/logger"
)

// Recovery converts a handler panic into an InternalError on the context so
// ErrorHandler renders it. The stack only goes to the log.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.Error(c.Request.Context(), "handler panicked",
				"method", c.Request.Method,
				"route", c.FullPath(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
			appErr := apperror.NewInternal(fmt.Errorf("panic in %s %s: %v", c.Request.Method, c.FullPath(), r)).
				WithDetail("request_id", c.GetString(ContextRequestID))
			_ = c.Error(appErr)
			c.Abort()
		}()
		c.Next()
	}
}
