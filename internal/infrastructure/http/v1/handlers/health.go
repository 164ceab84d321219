package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks reachability of the data operations backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	backend Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(backend Pinger) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.backend.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"backend": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"backend": "healthy",
		},
	})
}
