package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListContractors(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	contractors, err := handler.contractorService.List(caller)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "contractors", contractors)
}

func (handler *Handler) GetContractor(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	details, err := handler.contractorService.Get(caller, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"contractor": details.Contractor,
		"counts":     details.Usage,
	})
}

func (handler *Handler) CreateContractor(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := contractorInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	contractor, err := handler.contractorService.Create(caller, input.toService())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusCreated, "contractor", contractor)
}

func (handler *Handler) UpdateContractor(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := contractorInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	contractor, err := handler.contractorService.Update(caller, c.Params("id"), input.toService())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "contractor", contractor)
}

func (handler *Handler) DeleteContractor(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.contractorService.Delete(caller, c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", nil)
}
