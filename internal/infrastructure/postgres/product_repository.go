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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Las categorías se leen de product_categories como arreglo ordenado.
const productSelect = `
	SELECT p.id, p.store_id, p.supplier_id, p.sku, p.name, p.description,
		ARRAY(SELECT pc.category_id::text FROM product_categories pc WHERE pc.product_id = p.id ORDER BY pc.category_id),
		p.stock_min, p.stock_max, p.alert_percentage, p.unit_of_measure, p.reference_price, p.status,
		p.created_at, p.updated_at
	FROM products p`

// Create persiste un nuevo producto y sus categorías.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, store_id, supplier_id, sku, name, description, stock_min, stock_max,
			alert_percentage, unit_of_measure, reference_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.StoreID, p.SupplierID, p.SKU, p.Name, p.Description, p.StockMin, p.StockMax,
		p.AlertPercentage, p.UnitOfMeasure, p.ReferencePrice, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return r.setCategories(ctx, p.ID, p.CategoryIDs, false)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByStoreAndSKU obtiene un producto por tienda y SKU.
func (r *ProductRepo) GetByStoreAndSKU(ctx context.Context, storeID, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.store_id = $1 AND p.sku = $2`, storeID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza los datos maestros y reemplaza las categorías.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET supplier_id = $2, sku = $3, name = $4, description = $5, stock_min = $6,
			stock_max = $7, alert_percentage = $8, unit_of_measure = $9, reference_price = $10,
			status = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.SupplierID, p.SKU, p.Name, p.Description, p.StockMin,
		p.StockMax, p.AlertPercentage, p.UnitOfMeasure, p.ReferencePrice,
		p.Status, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return r.setCategories(ctx, p.ID, p.CategoryIDs, true)
}

// ListByStore lista productos de la tienda (activos e inactivos) por nombre.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE p.store_id = $1 ORDER BY p.name, p.id LIMIT $2 OFFSET $3`, storeID, limit, offset)
}

// ListActive lista productos activos; storeID vacío = todas las tiendas.
func (r *ProductRepo) ListActive(ctx context.Context, storeID string) ([]*entity.Product, error) {
	if storeID == "" {
		return r.list(ctx, productSelect+` WHERE p.status = $1 ORDER BY p.name, p.id`, entity.ProductStatusActive)
	}
	return r.list(ctx, productSelect+` WHERE p.status = $1 AND p.store_id = $2 ORDER BY p.name, p.id`,
		entity.ProductStatusActive, storeID)
}

// SetStatus cambia el estado (desactivar = baja lógica; el libro se conserva).
func (r *ProductRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set product status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) setCategories(ctx context.Context, productID string, categoryIDs []string, replace bool) error {
	if replace {
		if _, err := r.q.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
			return fmt.Errorf("clear product categories: %w", err)
		}
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_categories (product_id, category_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`,
		productID, categoryIDs)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product categories: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.StoreID, &p.SupplierID, &p.SKU, &p.Name, &p.Description, &p.CategoryIDs,
		&p.StockMin, &p.StockMax, &p.AlertPercentage, &p.UnitOfMeasure, &p.ReferencePrice, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
