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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo árbol de categorías por tienda.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categorySelect = `SELECT id, store_id, parent_id, name, name_key, created_at, updated_at FROM categories`

// Create persiste una categoría; nombre repetido entre hermanos → ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, store_id, parent_id, name, name_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.StoreID, c.ParentID, c.Name, c.NameKey, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.findOne(ctx, categorySelect+` WHERE id = $1`, id)
}

// GetBySibling busca por tienda, padre y nombre normalizado. parentID nil = raíz.
func (r *CategoryRepo) GetBySibling(ctx context.Context, storeID string, parentID *string, nameKey string) (*entity.Category, error) {
	return r.findOne(ctx,
		categorySelect+` WHERE store_id = $1 AND parent_id IS NOT DISTINCT FROM $2 AND name_key = $3`,
		storeID, parentID, nameKey)
}

// Update renombra o mueve la categoría.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE categories SET parent_id = $2, name = $3, name_key = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.ParentID, c.Name, c.NameKey, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStore todas las categorías de la tienda.
func (r *CategoryRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, categorySelect+` WHERE store_id = $1 ORDER BY name_key, id`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete borra la categoría y sus vínculos con productos. Con hijas la FK lo impide → ErrConflict.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_categories WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("unlink category: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.StoreID, &c.ParentID, &c.Name, &c.NameKey, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
