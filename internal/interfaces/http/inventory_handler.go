package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del libro de movimientos y del stock (protegido).
type InventoryHandler struct {
	uc    *inventory.RegisterMovementUseCase
	stock *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, stock *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, stock: stock}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeId  path  string                       true  "ID de la tienda"
// @Param        body     body  dto.RegisterMovementRequest  true  "product_id, type (ENTRADA|SAIDA|PERDA), quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), GetStoreID(c), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        storeId     path   string  true   "ID de la tienda"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "ENTRADA, SAIDA o PERDA"
// @Param        from        query  string  false  "Desde (RFC3339)"
// @Param        to          query  string  false  "Hasta (RFC3339)"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := pagination(c, 50, 200)
	filter := repository.MovementFilter{
		StoreID:   GetStoreID(c),
		ProductID: c.Query("product_id"),
		Type:      entity.MovementType(c.Query("type")),
		Limit:     limit,
		Offset:    offset,
	}
	var err error
	if filter.From, err = queryTime(c, "from"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	if filter.To, err = queryTime(c, "to"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	out, err := h.uc.ListMovements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VerifyMovement godoc
// @Summary      Marcar movimiento como verificado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/movements/{id}/verify [post]
func (h *InventoryHandler) VerifyMovement(c *fiber.Ctx) error {
	out, err := h.uc.VerifyMovement(c.UserContext(), c.Params("id"), GetStoreID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelMovement godoc
// @Summary      Cancelar movimiento (deja de contar en el stock)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/movements/{id}/cancel [post]
func (h *InventoryHandler) CancelMovement(c *fiber.Ctx) error {
	out, err := h.uc.CancelMovement(c.UserContext(), c.Params("id"), GetStoreID(c), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Stock actual de un producto (derivado del libro)
// @Description  Sin tienda en la ruta suma todas las tiendas.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Param        id       path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/products/{id}/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.stock.GetCurrentStock(c.UserContext(), c.Params("id"), GetStoreID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetLowStock godoc
// @Summary      Productos sin stock o bajo el umbral de alerta
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Success      200  {object}  map[string]interface{}  "total, items ([]dto.LowStockItemResponse)"
// @Router       /api/stores/{storeId}/stock/low [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	list, err := h.stock.GetLowStockProducts(c.UserContext(), GetStoreID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
