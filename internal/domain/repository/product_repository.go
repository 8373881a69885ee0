package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetBy* devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByStoreAndSKU(ctx context.Context, storeID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Product, error)
	// ListActive lista productos activos; storeID vacío = todas las tiendas.
	ListActive(ctx context.Context, storeID string) ([]*entity.Product, error)
	SetStatus(ctx context.Context, id, status string) error
}
