package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// LocalStoreID tienda resuelta por RequirePermission.
const LocalStoreID = "store_id"

// permissionChecker lo implementa *permission.UseCase; la interfaz permite probar el middleware sin DB.
type permissionChecker interface {
	Check(ctx context.Context, userID, action, resource, storeID string) (domperm.Decision, error)
}

// StoreIDFrom toma la tienda del parámetro :storeId, del query store_id o del header X-Store-ID,
// en ese orden. Vacío = acción sin tienda (se resuelve solo contra permisos y roles globales).
func StoreIDFrom(c *fiber.Ctx) string {
	if id := c.Params("storeId"); id != "" {
		return id
	}
	if id := c.Query("store_id"); id != "" {
		return id
	}
	return c.Get("X-Store-ID")
}

// GetStoreID devuelve la tienda resuelta por RequirePermission.
func GetStoreID(c *fiber.Ctx) string {
	if s, _ := c.Locals(LocalStoreID).(string); s != "" {
		return s
	}
	return StoreIDFrom(c)
}

// RequirePermission resuelve action para el usuario del token. Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 sin user_id en el contexto, si el usuario ya no existe o no está activo.
//   - 403 cuando la resolución niega (incluye la regla que decidió).
//   - 503 si no se pudo cargar el snapshot de permisos.
//
// El recurso es el parámetro :id cuando la ruta lo tiene.
func RequirePermission(action string, checker permissionChecker, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return unauthorized(c)
		}
		storeID := StoreIDFrom(c)
		resource := c.Params("id")

		d, err := checker.Check(c.UserContext(), userID, action, resource, storeID)
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return unauthorized(c)
		}
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("action", action).Msg("verificación de permiso")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !d.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "permiso '" + action + "' denegado (" + string(d.Rule) + ")",
			})
		}
		c.Locals(LocalStoreID, storeID)
		return c.Next()
	}
}

// authorize verificación dentro de un handler, cuando la tienda viene en el cuerpo o depende del caso.
// Responde 403/503 por sí misma; ok=false significa que la respuesta ya está escrita.
func authorize(c *fiber.Ctx, checker permissionChecker, action, storeID string) (ok bool, err error) {
	d, err := checker.Check(c.UserContext(), GetUserID(c), action, "", storeID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return false, unauthorized(c)
		}
		return false, c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "PERMISSION_CHECK_FAILED",
			Message: "no se pudo verificar el permiso, intente más tarde",
		})
	}
	if !d.Allowed {
		return false, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "permiso '" + action + "' denegado (" + string(d.Rule) + ")",
		})
	}
	return true, nil
}
