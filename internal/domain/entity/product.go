package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un producto de una tienda (tenant).
// El stock actual NO se guarda aquí: se deriva siempre del libro de movimientos.
type Product struct {
	ID              string
	StoreID         string
	SupplierID      *string
	SKU             string
	Name            string
	Description     string
	CategoryIDs     []string
	StockMin        int64
	StockMax        int64
	AlertPercentage int64 // porcentaje de StockMin que dispara la alerta de stock bajo
	UnitOfMeasure   string
	ReferencePrice  decimal.Decimal
	Status          string // active, inactive
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive indica si el producto participa de alertas y listados por defecto.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
