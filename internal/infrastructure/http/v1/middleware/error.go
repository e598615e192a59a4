package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"robotpacc/internal/core/apperror"
	"robotpacc/pkg/logger"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Hides internal errors from clients while logging full details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"status", appErr.HTTPStatus,
					"cause", appErr.Err,
				)
			}
			c.JSON(appErr.HTTPStatus, ErrorResponse{
				Error:   appErr.Message,
				Code:    appErr.Code,
				Details: appErr.Details,
			})
			return
		}

		logger.Error(c.Request.Context(), "unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  apperror.CodeInternal,
			Details: map[string]any{
				"request_id": c.GetString(ContextRequestID),
			},
		})
	}
}
