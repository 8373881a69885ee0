package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// MovementTotals agregado de movimientos no cancelados de un tipo en un período.
type MovementTotals struct {
	Type     entity.MovementType
	Count    int64
	Quantity int64
	Value    decimal.Decimal // SUM(quantity * price); movimientos sin precio aportan 0
}

// ProductOutflow salidas y pérdidas de un producto en un período.
type ProductOutflow struct {
	ProductID    string
	SKU          string
	Name         string
	OutQuantity  int64
	OutValue     decimal.Decimal
	LossQuantity int64
}

// ReportRepository consultas read-only sobre el libro para reportes.
type ReportRepository interface {
	MovementTotals(ctx context.Context, storeID string, from, to time.Time) ([]MovementTotals, error)
	// TopOutflows ordena por valor de salida descendente y luego por cantidad.
	TopOutflows(ctx context.Context, storeID string, from, to time.Time, limit int) ([]ProductOutflow, error)
}
