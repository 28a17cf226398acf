package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/teachflow/internal/services"
)

func (handler *Handler) ListPayments(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	dueFrom, err := optionalDayQuery(c, "due_from")
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	dueTo, err := optionalDayQuery(c, "due_to")
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	payments, err := handler.paymentService.List(caller, services.PaymentListFilter{
		Status:       c.Query("status"),
		ContractorID: c.Query("contractor_id"),
		DueFrom:      dueFrom,
		DueTo:        dueTo,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "payments", payments)
}

func (handler *Handler) GetPayment(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	payment, err := handler.paymentService.Get(caller, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "payment", payment)
}

func (handler *Handler) CreatePayment(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := paymentInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	serviceInput, err := input.toService(caller.Location())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	payment, err := handler.paymentService.Create(caller, serviceInput)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusCreated, "payment", payment)
}

func (handler *Handler) UpdatePaymentStatus(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := paymentStatusInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	receivedDate, err := optionalTimestamp(input.ReceivedDate, caller.Location())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	payment, err := handler.paymentService.UpdateStatus(caller, c.Params("id"), input.Status, receivedDate)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "payment", payment)
}
