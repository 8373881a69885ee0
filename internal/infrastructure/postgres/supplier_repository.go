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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores por tienda.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierSelect = `SELECT id, store_id, name, name_key, document, email, phone, status, created_at, updated_at FROM suppliers`

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (id, store_id, name, name_key, document, email, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.StoreID, s.Name, s.NameKey, s.Document, s.Email, s.Phone, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.findOne(ctx, supplierSelect+` WHERE id = $1`, id)
}

// GetByStoreAndKey busca por nombre normalizado dentro de la tienda.
func (r *SupplierRepo) GetByStoreAndKey(ctx context.Context, storeID, nameKey string) (*entity.Supplier, error) {
	return r.findOne(ctx, supplierSelect+` WHERE store_id = $1 AND name_key = $2`, storeID, nameKey)
}

// Update actualiza datos de contacto y estado.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, name_key = $3, document = $4, email = $5, phone = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.Name, s.NameKey, s.Document, s.Email, s.Phone, s.Status, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStore proveedores de la tienda por nombre.
func (r *SupplierRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, supplierSelect+` WHERE store_id = $1 ORDER BY name_key, id LIMIT $2 OFFSET $3`,
		storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.StoreID, &s.Name, &s.NameKey, &s.Document, &s.Email, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
