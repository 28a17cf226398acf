package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/teachflow/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func respondSuccess(c *fiber.Ctx, status int, key string, value any) error {
	payload := fiber.Map{"success": true}
	if key != "" {
		payload[key] = value
	}
	return c.Status(status).JSON(payload)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInUse):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		handler.log.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return apiError(c, status, services.PublicMessage(err))
}

// requireCaller reads the caller stored by AuthRequired.
func (handler *Handler) requireCaller(c *fiber.Ctx) (services.Caller, error) {
	caller, ok := currentCaller(c)
	if !ok {
		return services.Caller{}, services.ErrUnauthenticated
	}
	return caller, nil
}

func parseJSONBody(c *fiber.Ctx, payload any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(payload); err != nil {
		return errInvalidBody
	}
	return nil
}

var errInvalidBody = errors.New("invalid request body")

// optionalTimestampQuery accepts a timestamp or a bare day. A bare day used as an upper
// bound covers the whole day in location.
func optionalTimestampQuery(c *fiber.Ctx, key string, location *time.Location, upperBound bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if day, err := services.ParseDay(raw); err == nil {
		start, end := services.DayRange(time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, location), location)
		if upperBound {
			return &end, nil
		}
		return &start, nil
	}
	parsed, err := services.ParseTimestamp(raw, location)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func optionalDayQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	day, err := services.ParseDay(raw)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// ErrorHandler renders errors that escape handlers, such as fiber routing errors, as JSON.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = strings.ToLower(fiberErr.Message)
		}
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		return apiError(c, status, message)
	}
}
