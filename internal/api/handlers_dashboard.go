package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/teachflow/internal/services"
)

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	stats, err := handler.dashboardService.Stats(caller)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "dashboard", stats)
}

// GetFinancialSummary defaults to the caller's current calendar month.
func (handler *Handler) GetFinancialSummary(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	location := caller.Location()
	from, err := optionalTimestampQuery(c, "from", location, false)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	to, err := optionalTimestampQuery(c, "to", location, true)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	monthStart, monthEnd := services.MonthRange(time.Now(), location)
	if from == nil {
		from = &monthStart
	}
	if to == nil {
		to = &monthEnd
	}

	summary, err := handler.paymentService.Summary(caller, *from, *to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "summary", summary)
}
