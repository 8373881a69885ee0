package dto

import "github.com/shopspring/decimal"

// ReportPeriodRequest parámetros para GET /api/stores/:storeId/reports/outflows.
type ReportPeriodRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
	TopN      int    `query:"top_n"`      // default 20, max 200
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MovementTotalsDTO totales de un período por tipo de movimiento.
type MovementTotalsDTO struct {
	Entries      int64           `json:"entries"`
	EntryQty     int64           `json:"entry_quantity"`
	EntryValue   decimal.Decimal `json:"entry_value"`
	Outflows     int64           `json:"outflows"`
	OutflowQty   int64           `json:"outflow_quantity"`
	OutflowValue decimal.Decimal `json:"outflow_value"`
	Losses       int64           `json:"losses"`
	LossQty      int64           `json:"loss_quantity"`
	LossValue    decimal.Decimal `json:"loss_value"`
	NetQuantity  int64           `json:"net_quantity"` // entradas - salidas - pérdidas
}

// TopProductDTO producto del widget de más vendidos.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	OutQuantity  int64           `json:"out_quantity"`
	OutValue     decimal.Decimal `json:"out_value"`
	LossQuantity int64           `json:"loss_quantity"`
}

// StoreSummaryDTO respuesta de GET /api/stores/:storeId/reports/summary.
type StoreSummaryDTO struct {
	StoreID       string            `json:"store_id"`
	Today         MovementTotalsDTO `json:"today"`
	Month         MovementTotalsDTO `json:"month"`
	TopProducts   []TopProductDTO   `json:"top_products"`
	LowStockCount int               `json:"low_stock_count"`
	OutOfStock    int               `json:"out_of_stock_count"`
	DateLabel     string            `json:"date_label"` // ej: "Outubro 2026"
}

// OutflowRankingDTO posición de un producto en el ranking de salidas.
type OutflowRankingDTO struct {
	Rank          int             `json:"rank"`
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	ProductName   string          `json:"product_name"`
	OutQuantity   int64           `json:"out_quantity"`
	OutValue      decimal.Decimal `json:"out_value"`
	LossQuantity  int64           `json:"loss_quantity"`
	ValuePct      decimal.Decimal `json:"value_pct"`            // participación % en el valor total
	CumulativePct decimal.Decimal `json:"cumulative_value_pct"` // acumulado descendente
	IsTopPareto   bool            `json:"is_top_pareto"`
}

// OutflowReportDTO respuesta de GET /api/stores/:storeId/reports/outflows.
type OutflowReportDTO struct {
	Period      PeriodDTO           `json:"period"`
	Totals      MovementTotalsDTO   `json:"totals"`
	Ranking     []OutflowRankingDTO `json:"ranking"`
	ParetoItems []OutflowRankingDTO `json:"pareto_items"`
}
