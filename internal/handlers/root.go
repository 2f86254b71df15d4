package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trudransh/kpa-formsdb/internal/config"
	"github.com/trudransh/kpa-formsdb/internal/services"
)

// RootHandler handles the status and health routes
type RootHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// Root handles GET /
// @Summary Service status and endpoint directory
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *RootHandler) Root(c *fiber.Ctx) error {
	version, _ := c.Locals("apiVersion").(string)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "API is running!",
		"message": "KPA Form Data API v1.0.0",
		"version": version,
		"endpoints": fiber.Map{
			"authentication":       "/v1/auth/login",
			"form_data":            "/v1/form-data",
			"wheel_specifications": "/api/forms/wheel-specifications",
			"bogie_checksheet":     "/api/forms/bogie-checksheet",
			"documentation":        "/swagger/index.html",
			"metrics":              "/metrics",
		},
	})
}

// Health handles GET /health
// @Summary Service health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *RootHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
