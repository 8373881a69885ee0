package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/permission"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
)

// PermissionHandler administración de permisos: concesiones personalizadas, roles por tienda,
// permisos efectivos y simulación.
type PermissionHandler struct {
	uc *permission.UseCase
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(uc *permission.UseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// adminAction permisos por tienda se administran con MANAGE_PERMISSIONS en esa tienda;
// los globales exigen MANAGE_USERS.
func adminAction(storeID string) string {
	if storeID != "" {
		return domperm.ActionManagePermissions
	}
	return domperm.ActionManageUsers
}

// Catalogue godoc
// @Summary      Catálogo de acciones y permisos implícitos por rol
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActionCatalogueResponse
// @Router       /api/permissions/catalogue [get]
func (h *PermissionHandler) Catalogue(c *fiber.Ctx) error {
	return c.JSON(h.uc.Catalogue())
}

// Test godoc
// @Summary      Simular una verificación de permiso
// @Description  Devuelve el resultado y la regla que decidió. context.at permite evaluar ventanas horarias y expiraciones en otro instante.
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TestPermissionRequest  true  "user_id, action, resource, store_id, context"
// @Success      200  {object}  dto.TestPermissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions/test [post]
func (h *PermissionHandler) Test(c *fiber.Ctx) error {
	var in dto.TestPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.UserID == "" || in.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id y action son requeridos"})
	}
	if in.UserID != GetUserID(c) {
		if ok, err := authorize(c, h.uc, domperm.ActionManagePermissions, in.StoreID); !ok {
			return err
		}
	}
	out, err := h.uc.TestPermission(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Effective godoc
// @Summary      Permisos efectivos de un usuario con su procedencia
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        userId    path   string  true   "ID del usuario"
// @Param        store_id  query  string  false  "Tienda"
// @Success      200  {object}  dto.EffectivePermissionsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions/users/{userId}/effective [get]
func (h *PermissionHandler) Effective(c *fiber.Ctx) error {
	userID := c.Params("userId")
	storeID := c.Query("store_id")
	if userID != GetUserID(c) {
		if ok, err := authorize(c, h.uc, domperm.ActionManagePermissions, storeID); !ok {
			return err
		}
	}
	out, err := h.uc.GetUserEffectivePermissions(c.UserContext(), userID, storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListGrants godoc
// @Summary      Permisos personalizados de un usuario (incluye vencidos)
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.UserPermissionResponse
// @Router       /api/permissions/users/{userId} [get]
func (h *PermissionHandler) ListGrants(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID != GetUserID(c) {
		if ok, err := authorize(c, h.uc, domperm.ActionManageUsers, ""); !ok {
			return err
		}
	}
	out, err := h.uc.ListUserPermissions(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Grant godoc
// @Summary      Conceder o negar una acción a un usuario
// @Description  grant=false crea una negación explícita, que gana sobre cualquier concesión.
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userId  path  string                      true  "ID del usuario"
// @Param        body    body  dto.GrantPermissionRequest  true  "action, resource, store_id, grant, conditions, expires_at"
// @Success      201  {object}  dto.UserPermissionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/permissions/users/{userId} [post]
func (h *PermissionHandler) Grant(c *fiber.Ctx) error {
	var in dto.GrantPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.UserID = c.Params("userId")
	storeID := ""
	if in.StoreID != nil {
		storeID = *in.StoreID
	}
	if ok, err := authorize(c, h.uc, adminAction(storeID), storeID); !ok {
		return err
	}
	out, err := h.uc.GrantPermission(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Revoke godoc
// @Summary      Revocar un permiso personalizado
// @Tags         permissions
// @Security     Bearer
// @Param        permissionId  path   string  true   "ID del permiso"
// @Param        store_id      query  string  false  "Tienda del permiso (administradores de tienda)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions/{permissionId} [delete]
func (h *PermissionHandler) Revoke(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if ok, err := authorize(c, h.uc, adminAction(storeID), storeID); !ok {
		return err
	}
	if err := h.uc.RevokePermission(c.UserContext(), c.Params("permissionId"), storeID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMembers godoc
// @Summary      Usuarios asignados a la tienda
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Success      200  {array}  dto.StoreMemberResponse
// @Router       /api/stores/{storeId}/members [get]
func (h *PermissionHandler) ListMembers(c *fiber.Ctx) error {
	out, err := h.uc.ListStoreMembers(c.UserContext(), GetStoreID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignRole godoc
// @Summary      Asignar o reemplazar el rol de un usuario en la tienda
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string                      true  "ID de la tienda"
// @Param        userId   path  string                      true  "ID del usuario"
// @Param        body     body  dto.AssignStoreRoleRequest  true  "store_role, permissions, conditions, expires_at"
// @Success      200  {object}  dto.StoreMemberResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/members/{userId} [put]
func (h *PermissionHandler) AssignRole(c *fiber.Ctx) error {
	var in dto.AssignStoreRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.UserID = c.Params("userId")
	in.StoreID = GetStoreID(c)
	out, err := h.uc.AssignStoreRole(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveMember godoc
// @Summary      Quitar a un usuario de la tienda
// @Tags         stores
// @Security     Bearer
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        userId   path  string  true  "ID del usuario"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/members/{userId} [delete]
func (h *PermissionHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveStoreRole(c.UserContext(), c.Params("userId"), GetStoreID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
