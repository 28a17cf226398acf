package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/teachflow/internal/services"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		if c.Method() == fiber.MethodGet && wantsHTML(c) {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextCallerKey, services.CallerFromUser(user))
	return c.Next()
}

// wantsHTML reports browser navigation rather than an API client.
func wantsHTML(c *fiber.Ctx) bool {
	accept := strings.ToLower(c.Get(fiber.HeaderAccept))
	return strings.Contains(accept, "text/html") && !strings.HasPrefix(c.Path(), "/api/")
}
