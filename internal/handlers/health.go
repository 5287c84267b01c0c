package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Health reports liveness along with the delivery mode.
func Health(gatewayConfigured bool) fiber.Handler {
	mode := "demo"
	if gatewayConfigured {
		mode = "live"
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "delivery": mode})
	}
}
