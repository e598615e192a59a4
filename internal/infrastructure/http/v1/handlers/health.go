package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"robotpacc/internal/infrastructure/storage/postgres"
)

// Version is reported by the info endpoint; overridden at link time.
var Version = "0.1.0"

// DBHealth is the database view the health endpoints need.
type DBHealth interface {
	Ping(ctx context.Context) error
	Stats() postgres.PoolStats
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db DBHealth
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db DBHealth) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles liveness check (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles readiness check (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"database": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"database": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":      "robotpacc",
		"version":  Version,
		"database": h.db.Stats(),
	})
}
