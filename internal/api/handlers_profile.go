package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/teachflow/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	return handler.Me(c)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := profileInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.profileService.Update(caller, services.ProfileInput{
		Name:            input.Name,
		PhoneNumber:     input.PhoneNumber,
		Timezone:        input.Timezone,
		DefaultCurrency: input.DefaultCurrency,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "user", user)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	input := changePasswordInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.NewPassword {
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	}

	if err := handler.profileService.ChangePassword(caller, input.CurrentPassword, input.NewPassword); err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "", nil)
}
