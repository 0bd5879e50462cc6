package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/DanySando/Proyecto-GPQ/internal/application/dto"
	"github.com/DanySando/Proyecto-GPQ/internal/domain"
)

// writeError traduce errores de dominio a status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	body := dto.ErrorResponse{Code: code, Message: err.Error()}

	var fe *domain.FieldError
	if errors.As(err, &fe) {
		body.Field = fe.Field
		body.Message = fe.Message
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		body.Message = "error interno"
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrQualityControlNotApproved):
		return fiber.StatusBadRequest, "QC_NOT_APPROVED"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrAlreadyApproved):
		return fiber.StatusConflict, "ALREADY_APPROVED"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}
