package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (tenant).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	// ListByUser tiendas donde el usuario tiene una asignación vigente.
	ListByUser(ctx context.Context, userID string) ([]*entity.Store, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Store, error)
}
