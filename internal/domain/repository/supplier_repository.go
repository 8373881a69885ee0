package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByStoreAndKey(ctx context.Context, storeID, nameKey string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Supplier, error)
}
