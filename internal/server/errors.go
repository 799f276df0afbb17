package server

import (
	"errors"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, msg := classify(err)
	if code >= fiber.StatusInternalServerError {
		logger.FromCtx(c).Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return c.Status(code).JSON(ErrorResponse{Error: msg})
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, "internal server error"
		}
		return fe.Code, fe.Message
	}

	switch {
	case errors.Is(err, apperr.ErrMissingToken):
		return fiber.StatusUnauthorized, "missing token"
	case errors.Is(err, apperr.ErrInvalidToken):
		return fiber.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, apperr.ErrForbidden):
		return fiber.StatusForbidden, apperr.Message(err)
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrValidation):
		return fiber.StatusBadRequest, apperr.Message(err)
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound, apperr.Message(err)
	}
	return fiber.StatusInternalServerError, "internal server error"
}
