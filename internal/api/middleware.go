package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/teachflow/internal/services"
)

const (
	authCookieName   = "teachflow_auth"
	contextCallerKey = "current_caller"
)

func currentCaller(c *fiber.Ctx) (services.Caller, bool) {
	caller, ok := c.Locals(contextCallerKey).(services.Caller)
	return caller, ok
}
