package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stores/:storeId/movements.
type RegisterMovementRequest struct {
	ProductID  string           `json:"product_id" validate:"required"`
	SupplierID *string          `json:"supplier_id,omitempty"`
	Type       string           `json:"type" validate:"required,oneof=ENTRADA SAIDA PERDA"`
	Quantity   int64            `json:"quantity" validate:"required,min=1"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Batch      *string          `json:"batch,omitempty"`
	Expiration *time.Time       `json:"expiration,omitempty"`
	Note       *string          `json:"note,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	StoreID      string           `json:"store_id"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	UserID       *string          `json:"user_id,omitempty"`
	Type         string           `json:"type"`
	Quantity     int64            `json:"quantity"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Batch        *string          `json:"batch,omitempty"`
	Expiration   *time.Time       `json:"expiration,omitempty"`
	Note         *string          `json:"note,omitempty"`
	BalanceAfter int64            `json:"balance_after"`
	Verified     bool             `json:"verified"`
	Cancelled    bool             `json:"cancelled"`
	CancelledAt  *time.Time       `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockBalanceResponse stock derivado del libro para un producto.
type StockBalanceResponse struct {
	ProductID             string `json:"product_id"`
	StoreID               string `json:"store_id,omitempty"` // vacío = todas las tiendas
	CurrentStock          int64  `json:"current_stock"`
	NegativeStockDetected bool   `json:"negative_stock_detected"`
}

// LowStockItemResponse producto en OUT_OF_STOCK o LOW_STOCK.
type LowStockItemResponse struct {
	ProductID             string `json:"product_id"`
	StoreID               string `json:"store_id"`
	SKU                   string `json:"sku"`
	Name                  string `json:"name"`
	CurrentStock          int64  `json:"current_stock"`
	StockMin              int64  `json:"stock_min"`
	AlertPercentage       int64  `json:"alert_percentage"`
	AlertThreshold        int64  `json:"alert_threshold"`
	Status                string `json:"status"` // OUT_OF_STOCK, LOW_STOCK
	NegativeStockDetected bool   `json:"negative_stock_detected,omitempty"`
}
