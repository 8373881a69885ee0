package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
)

// writeError traduce errores de dominio a status HTTP. Los errores envueltos con %w
// conservan su mensaje (ej. "invalid input: sku requerido").
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		status, code = fiber.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "USER_NOT_FOUND"
	case errors.Is(err, domain.ErrStoreNotFound):
		status, code = fiber.StatusNotFound, "STORE_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidCondition):
		status, code = fiber.StatusBadRequest, "INVALID_CONDITION"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrCategoryCycle):
		status, code = fiber.StatusConflict, "CATEGORY_CYCLE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

// pagination lee limit/offset con los topes del listado.
func pagination(c *fiber.Ctx, def, max int) (int, int) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		p = dto.PageRequest{}
	}
	p.Clamp(def, max)
	return p.Limit, p.Offset
}
