package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/teachflow/internal/services"
)

func (handler *Handler) ListClasses(c *fiber.Ctx) error {
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

	classes, err := handler.classService.List(caller, services.ClassListFilter{
		StudentID:    c.Query("student_id"),
		ContractorID: c.Query("contractor_id"),
		Status:       c.Query("status"),
		StartFrom:    from,
		StartTo:      to,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "classes", classes)
}

func (handler *Handler) GetClass(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	class, err := handler.classService.Get(caller, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "class", class)
}

func (handler *Handler) CreateClass(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := classInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	serviceInput, err := input.toService(caller.Location())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	class, err := handler.classService.Create(caller, serviceInput)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusCreated, "class", class)
}

func (handler *Handler) UpdateClassStatus(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := classStatusInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.classService.UpdateStatus(caller, c.Params("id"), input.Status, input.ClassNotes)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	payload := fiber.Map{
		"success":         true,
		"class":           result.Class,
		"payment_created": result.PaymentCreated,
	}
	if result.Payment != nil {
		payload["payment"] = result.Payment
	}
	if result.Warning != "" {
		payload["warning"] = result.Warning
	}
	return c.JSON(payload)
}

func (handler *Handler) DeleteClass(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.classService.Delete(caller, c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", nil)
}
