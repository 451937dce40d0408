package handler

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the store is reachable
type HealthHandler struct {
	service string
	ping    func(ctx context.Context) error
}

// NewHealthHandler creates a health handler around a store ping
func NewHealthHandler(service string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{service: service, ping: ping}
}

// Check probes store connectivity
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		log.Printf("Health check failed: %v", err)
		response.ServiceUnavailable(c, "Database unavailable")
		return
	}

	response.OK(c, "Service is healthy", gin.H{
		"status":   "ok",
		"service":  h.service,
		"database": "connected",
	})
}
