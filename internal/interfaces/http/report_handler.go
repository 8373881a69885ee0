package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/report"
)

// ReportHandler reportes de movimientos por tienda (protegido, READ_REPORTS).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del día y del mes de la tienda
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        storeId  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.StoreSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), GetStoreID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Outflows godoc
// @Summary      Ranking de salidas del período (Pareto 80/20)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        storeId     path   string  true   "ID de la tienda"
// @Param        start_date  query  string  false  "YYYY-MM-DD (default: primer día del mes)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Param        top_n       query  int     false  "Máximo de productos"  default(20)
// @Success      200  {object}  dto.OutflowReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reports/outflows [get]
func (h *ReportHandler) Outflows(c *fiber.Ctx) error {
	var req dto.ReportPeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.GetOutflowReport(c.UserContext(), GetStoreID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
