package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicial se registra como movimiento ENTRADA.
type CreateProductRequest struct {
	SKU             string          `json:"sku" validate:"required,min=1,max=100"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Description     string          `json:"description"`
	SupplierID      *string         `json:"supplier_id,omitempty"`
	CategoryIDs     []string        `json:"category_ids,omitempty"`
	StockMin        int64           `json:"stock_min" validate:"min=0"`
	StockMax        int64           `json:"stock_max" validate:"min=0"`
	AlertPercentage int64           `json:"alert_percentage" validate:"min=0,max=100"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	ReferencePrice  decimal.Decimal `json:"reference_price"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock solo cambia vía movimientos).
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description"`
	SupplierID      *string          `json:"supplier_id"`
	CategoryIDs     []string         `json:"category_ids"`
	StockMin        *int64           `json:"stock_min"`
	StockMax        *int64           `json:"stock_max"`
	AlertPercentage *int64           `json:"alert_percentage"`
	UnitOfMeasure   *string          `json:"unit_of_measure"`
	ReferencePrice  *decimal.Decimal `json:"reference_price"`
	Status          *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProductResponse salida de un producto con el stock derivado del libro.
type ProductResponse struct {
	ID              string          `json:"id"`
	StoreID         string          `json:"store_id"`
	SupplierID      *string         `json:"supplier_id,omitempty"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryIDs     []string        `json:"category_ids"`
	StockMin        int64           `json:"stock_min"`
	StockMax        int64           `json:"stock_max"`
	AlertPercentage int64           `json:"alert_percentage"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	ReferencePrice  decimal.Decimal `json:"reference_price"`
	Status          string          `json:"status"`
	CurrentStock    int64           `json:"current_stock"`
	StockStatus     string          `json:"stock_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
