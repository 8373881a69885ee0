package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes sobre movements (solo lectura).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// MovementTotals agrupa por tipo en [from, to].
func (r *ReportRepo) MovementTotals(ctx context.Context, storeID string, from, to time.Time) ([]repository.MovementTotals, error) {
	query := `
		SELECT type, COUNT(*), COALESCE(SUM(quantity), 0)::bigint,
		       COALESCE(SUM(quantity * COALESCE(price, 0)), 0)
		FROM movements
		WHERE store_id = $1 AND NOT cancelled AND created_at BETWEEN $2 AND $3
		GROUP BY type
		ORDER BY type`
	rows, err := r.q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("movement totals: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementTotals
	for rows.Next() {
		var (
			t   string
			tot repository.MovementTotals
		)
		if err := rows.Scan(&t, &tot.Count, &tot.Quantity, &tot.Value); err != nil {
			return nil, fmt.Errorf("scan movement totals: %w", err)
		}
		tot.Type = entity.MovementType(t)
		out = append(out, tot)
	}
	return out, rows.Err()
}

// TopOutflows productos con más salidas (SAIDA) en [from, to]; incluye pérdidas (PERDA) del mismo período.
func (r *ReportRepo) TopOutflows(ctx context.Context, storeID string, from, to time.Time, limit int) ([]repository.ProductOutflow, error) {
	query := `
		SELECT p.id, p.sku, p.name,
		       COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'SAIDA'), 0)::bigint AS out_qty,
		       COALESCE(SUM(m.quantity * COALESCE(m.price, 0)) FILTER (WHERE m.type = 'SAIDA'), 0) AS out_value,
		       COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'PERDA'), 0)::bigint AS loss_qty
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.store_id = $1 AND NOT m.cancelled AND m.type IN ('SAIDA', 'PERDA')
		  AND m.created_at BETWEEN $2 AND $3
		GROUP BY p.id, p.sku, p.name
		ORDER BY out_value DESC, out_qty DESC, p.sku
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, storeID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top outflows: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductOutflow
	for rows.Next() {
		var (
			p     repository.ProductOutflow
			value decimal.Decimal
		)
		if err := rows.Scan(&p.ProductID, &p.SKU, &p.Name, &p.OutQuantity, &value, &p.LossQuantity); err != nil {
			return nil, fmt.Errorf("scan top outflows: %w", err)
		}
		p.OutValue = value
		out = append(out, p)
	}
	return out, rows.Err()
}
