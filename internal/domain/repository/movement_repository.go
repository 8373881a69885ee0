package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
)

// MovementFilter filtros para listar movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	ProductID string
	StoreID   string
	Type      entity.MovementType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia del libro de movimientos (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)

	// LedgerEntries devuelve las entradas del libro de un producto; storeID vacío = todas las tiendas.
	LedgerEntries(ctx context.Context, productID, storeID string) ([]ledger.Entry, error)

	// LedgerEntriesByProduct devuelve, por producto, las sumas por tipo de movimiento
	// (ya agregadas en la DB) para los productos de la tienda; storeID vacío = todas.
	LedgerEntriesByProduct(ctx context.Context, storeID string) (map[string][]ledger.Entry, error)

	// LockLedger serializa escritores concurrentes de un mismo producto+tienda dentro de una tx.
	LockLedger(ctx context.Context, productID, storeID string) error

	SetVerified(ctx context.Context, id string, verified bool) error
	MarkCancelled(ctx context.Context, id string, at time.Time) error
}
