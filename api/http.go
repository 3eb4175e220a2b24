package api

import (
	"log/slog"
	"time"

	"techcommerce/frontend/buildinfo"
	"techcommerce/frontend/web"

	"github.com/gofiber/fiber/v2"
)

var _ FrontendHandler = &frontendHandler{}

type frontendHandler struct {
	logger *slog.Logger
	now    func() time.Time
}

// Home serves the static homepage
// @Summary Homepage
// @Description Static HTML page describing the service
// @Tags Frontend
// @Produce html
// @Success 200 {string} string "HTML document"
// @Router / [get]
func (h frontendHandler) Home(c *fiber.Ctx) error {
	h.logger.Info("Rendering HTML homepage")
	c.Type("html", "utf-8")
	return c.Status(fiber.StatusOK).Send(web.IndexHTML)
}

// Version returns build and runtime information
// @Summary Build information
// @Tags Frontend
// @Produce json
// @Success 200 {object} buildinfo.Info
// @Router /version [get]
func (h frontendHandler) Version(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(buildinfo.GetInfo())
}

// NewFrontendHandler returns the handler set for the static routes.
// A nil clock means time.Now.
func NewFrontendHandler(logger *slog.Logger, clock func() time.Time) FrontendHandler {
	if clock == nil {
		clock = time.Now
	}
	return &frontendHandler{logger: logger, now: clock}
}
