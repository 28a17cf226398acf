package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// LoginHint is where unauthenticated browser navigation lands.
func (handler *Handler) LoginHint(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"login":    "POST /api/auth/login",
		"register": "POST /api/auth/register",
	})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
