package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo tiendas (tenants) sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

const storeColumns = `s.id, s.name, s.owner_id, s.document, s.status, s.created_at, s.updated_at`

// Create persiste una tienda.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stores (id, name, owner_id, document, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.OwnerID, s.Document, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda; (nil, nil) si no existe.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores s WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

// Update actualiza nombre, documento y estado.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stores SET name = $2, document = $3, status = $4, updated_at = $5 WHERE id = $1`,
		s.ID, s.Name, s.Document, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

// ListByUser tiendas con asignación vigente del usuario.
func (r *StoreRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Store, error) {
	return r.list(ctx, `
		SELECT `+storeColumns+` FROM stores s
		JOIN store_user_permissions sup ON sup.store_id = s.id
		WHERE sup.user_id = $1 AND (sup.expires_at IS NULL OR sup.expires_at >= now())
		ORDER BY s.name, s.id`, userID)
}

// List todas las tiendas (administración de la plataforma).
func (r *StoreRepo) List(ctx context.Context, limit, offset int) ([]*entity.Store, error) {
	return r.list(ctx, `SELECT `+storeColumns+` FROM stores s ORDER BY s.name, s.id LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *StoreRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	if err := row.Scan(&s.ID, &s.Name, &s.OwnerID, &s.Document, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
