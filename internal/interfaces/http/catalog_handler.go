package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
)

// CatalogHandler categorías y proveedores de una tienda.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	suppliers  *usecase.SupplierUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories *usecase.CategoryUseCase, suppliers *usecase.SupplierUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, suppliers: suppliers}
}

// ListCategories godoc
// @Summary      Listar categorías (plano o ?tree=true)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        storeId  path   string  true   "ID de la tienda"
// @Param        tree     query  bool    false  "Devolver como árbol"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/stores/{storeId}/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	if c.QueryBool("tree", false) {
		out, err := h.categories.Tree(c.UserContext(), GetStoreID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.categories.List(c.UserContext(), GetStoreID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCategory godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.categories.Get(c.UserContext(), GetStoreID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string               true  "ID de la tienda"
// @Param        body     body  dto.CategoryRequest  true  "name, parent_id"
// @Success      201  {object}  dto.CategoryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.categories.Create(c.UserContext(), GetStoreID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary      Renombrar o mover categoría (sin ciclos)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string               true  "ID de la tienda"
// @Param        id       path  string               true  "ID de la categoría"
// @Param        body     body  dto.CategoryRequest  true  "name, parent_id"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.categories.Update(c.UserContext(), GetStoreID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría sin hijas
// @Tags         categories
// @Security     Bearer
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID de la categoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), GetStoreID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        storeId  path   string  true   "ID de la tienda"
// @Param        limit    query  int     false  "Límite"  default(50)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SupplierListResponse
// @Router       /api/stores/{storeId}/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	limit, offset := pagination(c, 50, 200)
	out, err := h.suppliers.List(c.UserContext(), GetStoreID(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetSupplier godoc
// @Summary      Obtener proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Router       /api/stores/{storeId}/suppliers/{id} [get]
func (h *CatalogHandler) GetSupplier(c *fiber.Ctx) error {
	out, err := h.suppliers.Get(c.UserContext(), GetStoreID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string               true  "ID de la tienda"
// @Param        body     body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201  {object}  dto.SupplierResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.suppliers.Create(c.UserContext(), GetStoreID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string               true  "ID de la tienda"
// @Param        id       path  string               true  "ID del proveedor"
// @Param        body     body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Router       /api/stores/{storeId}/suppliers/{id} [put]
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.suppliers.Update(c.UserContext(), GetStoreID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeactivateSupplier godoc
// @Summary      Desactivar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID del proveedor"
// @Success      204
// @Router       /api/stores/{storeId}/suppliers/{id} [delete]
func (h *CatalogHandler) DeactivateSupplier(c *fiber.Ctx) error {
	if err := h.suppliers.Deactivate(c.UserContext(), GetStoreID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
