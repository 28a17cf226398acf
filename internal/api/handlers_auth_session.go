package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/teachflow/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	}

	user, err := handler.authService.Register(services.RegistrationInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Timezone: input.Timezone,
		Currency: input.Currency,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, user); err != nil {
		handler.log.Error().Err(err).Msg("sign auth token")
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.log.Info().Str("user_id", user.ID).Msg("user registered")
	return respondSuccess(c, fiber.StatusCreated, "user", user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := credentialsInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.recordFailure(limiterKey, now)
			handler.log.Warn().
				Str("ip", limiterKey).
				Str("email", strings.ToLower(strings.TrimSpace(input.Email))).
				Msg("login failed")
		}
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, user); err != nil {
		handler.log.Error().Err(err).Msg("sign auth token")
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return respondSuccess(c, fiber.StatusOK, "user", user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return respondSuccess(c, fiber.StatusOK, "", nil)
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	caller, err := handler.requireCaller(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	user, err := handler.profileService.Get(caller)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, "user", user)
}
