package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/permission"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
)

// UserHandler perfil propio y administración global de usuarios.
type UserHandler struct {
	uc    *usecase.UserUseCase
	perms *permission.UseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, perms *permission.UseCase) *UserHandler {
	return &UserHandler{uc: uc, perms: perms}
}

// Me godoc
// @Summary      Usuario autenticado y sus permisos efectivos
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Tienda para resolver permisos"
// @Success      200  {object}  map[string]interface{}  "user, permissions"
// @Router       /api/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	user, err := h.uc.GetByID(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	eff, err := h.perms.GetUserEffectivePermissions(c.UserContext(), userID, c.Query("store_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "permissions": eff})
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c, 50, 200)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{userId} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRoles godoc
// @Summary      Reemplazar roles globales
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userId  path  string                      true  "ID del usuario"
// @Param        body    body  dto.UpdateUserRolesRequest  true  "roles"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/{userId}/roles [put]
func (h *UserHandler) UpdateRoles(c *fiber.Ctx) error {
	var in dto.UpdateUserRolesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateRoles(c.UserContext(), c.Params("userId"), in.Roles)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Activar, desactivar o suspender un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userId  path  string                       true  "ID del usuario"
// @Param        body    body  dto.UpdateUserStatusRequest  true  "status"
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/{userId}/status [put]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateUserStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("userId"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
