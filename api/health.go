package api

import (
	"techcommerce/frontend/domain"

	"github.com/gofiber/fiber/v2"
)

// Health handles the /health endpoint
// @Summary Liveness probe
// @Description Reports that the process is alive. Never checks dependencies.
// @Tags Health
// @Produce json
// @Success 200 {object} domain.ProbeResponse "Service is healthy"
// @Router /health [get]
func (h frontendHandler) Health(c *fiber.Ctx) error {
	h.logger.Info("Frontend health check")
	return c.Status(fiber.StatusOK).JSON(domain.NewProbeResponse(domain.StatusHealthy, h.now()))
}

// Ready handles the /ready endpoint
// @Summary Readiness probe
// @Description Reports that the service accepts traffic. Never checks dependencies.
// @Tags Health
// @Produce json
// @Success 200 {object} domain.ProbeResponse "Service is ready"
// @Router /ready [get]
func (h frontendHandler) Ready(c *fiber.Ctx) error {
	h.logger.Info("Frontend readiness check")
	return c.Status(fiber.StatusOK).JSON(domain.NewProbeResponse(domain.StatusReady, h.now()))
}
