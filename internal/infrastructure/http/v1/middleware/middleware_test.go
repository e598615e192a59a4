package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robotpacc/internal/core/apperror"
	"robotpacc/internal/infrastructure/http/v1/middleware"
	"robotpacc/pkg/logger"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Trace())
	r.Use(middleware.Logger(logger.NewNop()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Recovery())
	return r
}

func serve(r *gin.Engine, path string, header map[string]string) (*httptest.ResponseRecorder, middleware.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body middleware.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestErrorHandlerRendersAppError(t *testing.T) {
	r := newEngine()
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("item", "P-9"))
	})

	rec, body := serve(r, "/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperror.CodeNotFound, body.Code)
	assert.Equal(t, "P-9", body.Details["key"])
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	r := newEngine()
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation does not exist"))
	})

	rec, body := serve(r, "/boom", map[string]string{middleware.HeaderRequestID: "req-1"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
	assert.NotContains(t, body.Error, "relation")
	assert.Equal(t, "req-1", body.Details["request_id"])
	assert.Equal(t, "req-1", rec.Header().Get(middleware.HeaderRequestID))
}

func TestRecoveryTurnsPanicIntoInternalError(t *testing.T) {
	r := newEngine()
	r.GET("/panic", func(c *gin.Context) {
		panic("nil map")
	})

	rec, body := serve(r, "/panic", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
	assert.NotEmpty(t, body.Details["request_id"])
}
