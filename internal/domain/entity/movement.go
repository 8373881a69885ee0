package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento. El tipo determina el signo aplicado al reconstruir el stock.
const (
	MovementEntrada MovementType = "ENTRADA" // entrada (compra, devolución)
	MovementSaida   MovementType = "SAIDA"   // salida (venta)
	MovementPerda   MovementType = "PERDA"   // pérdida (avería, vencimiento, robo)
)

// Valid informa si el tipo es uno de los admitidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementEntrada, MovementSaida, MovementPerda:
		return true
	}
	return false
}

// Movement es una entrada del libro de stock (append-only).
// Solo Verified y Cancelled cambian después de creado; nunca se elimina.
type Movement struct {
	ID           string
	ProductID    string
	StoreID      string
	SupplierID   *string
	UserID       *string
	Type         MovementType
	Quantity     int64 // siempre > 0; el signo lo da Type
	Price        *decimal.Decimal
	Batch        *string
	Expiration   *time.Time
	Note         *string
	BalanceAfter int64 // snapshot del stock tras aplicar el movimiento
	Verified     bool
	Cancelled    bool
	CancelledAt  *time.Time
	CreatedAt    time.Time
}
