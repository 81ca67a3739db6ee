package handlers

import (
	"time"

	"langson-benefits/internal/config"
	"langson-benefits/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports service and database health
// @Summary Health check
// @Description Report service and database health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := config.HealthCheck(); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}

	return response.Success(c, "", fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
