package api

import (
	"github.com/gofiber/fiber/v2"
)

type FrontendHandler interface {
	Home(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
	Version(ctx *fiber.Ctx) error
}
