package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetBySibling busca por tienda + padre + nombre normalizado (unicidad entre hermanos).
	GetBySibling(ctx context.Context, storeID string, parentID *string, nameKey string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListByStore(ctx context.Context, storeID string) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
