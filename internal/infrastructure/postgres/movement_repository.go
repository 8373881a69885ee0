package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, store_id, supplier_id, user_id, type, quantity, price, batch,
	expiration, note, balance_after, verified, cancelled, cancelled_at, created_at`

// Create inserta un movimiento. Nunca actualiza ni borra filas existentes.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.StoreID, m.SupplierID, m.UserID, string(m.Type), m.Quantity, m.Price, m.Batch,
		m.Expiration, m.Note, m.BalanceAfter, m.Verified, m.Cancelled, m.CancelledAt, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List movimientos más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.StoreID != "" {
		add("store_id = $%d", f.StoreID)
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		add("type = $%d", string(f.Type))
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}

	query := `SELECT ` + movementColumns + ` FROM movements`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// LedgerEntries suma por tipo en la DB; los cancelados se excluyen en la consulta,
// así que cada tipo aparece a lo sumo una vez.
func (r *MovementRepo) LedgerEntries(ctx context.Context, productID, storeID string) ([]ledger.Entry, error) {
	query := `SELECT type, COALESCE(SUM(quantity), 0) FROM movements WHERE product_id = $1 AND NOT cancelled`
	args := []any{productID}
	if storeID != "" {
		query += ` AND store_id = $2`
		args = append(args, storeID)
	}
	query += ` GROUP BY type`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var (
			typ string
			qty int64
		)
		if err := rows.Scan(&typ, &qty); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, ledger.Entry{Type: entity.MovementType(typ), Quantity: qty})
	}
	return entries, rows.Err()
}

// LedgerEntriesByProduct igual que LedgerEntries para todos los productos de la tienda en una sola consulta.
func (r *MovementRepo) LedgerEntriesByProduct(ctx context.Context, storeID string) (map[string][]ledger.Entry, error) {
	query := `SELECT product_id, type, COALESCE(SUM(quantity), 0) FROM movements WHERE NOT cancelled`
	var args []any
	if storeID != "" {
		query += ` AND store_id = $1`
		args = append(args, storeID)
	}
	query += ` GROUP BY product_id, type`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger entries by product: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]ledger.Entry)
	for rows.Next() {
		var (
			productID, typ string
			qty            int64
		)
		if err := rows.Scan(&productID, &typ, &qty); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		out[productID] = append(out[productID], ledger.Entry{Type: entity.MovementType(typ), Quantity: qty})
	}
	return out, rows.Err()
}

// LockLedger toma un advisory lock de transacción por producto+tienda. Fuera de una tx
// el lock se liberaría al terminar la sentencia, así que solo tiene efecto vía TxRunner.
func (r *MovementRepo) LockLedger(ctx context.Context, productID, storeID string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, productID+":"+storeID); err != nil {
		return fmt.Errorf("lock ledger: %w", err)
	}
	return nil
}

// SetVerified marca o desmarca la verificación.
func (r *MovementRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE movements SET verified = $2 WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("verify movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkCancelled anula el movimiento; solo afecta filas aún no canceladas.
func (r *MovementRepo) MarkCancelled(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE movements SET cancelled = true, cancelled_at = $2 WHERE id = $1 AND NOT cancelled`, id, at)
	if err != nil {
		return fmt.Errorf("cancel movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m   entity.Movement
		typ string
	)
	err := row.Scan(
		&m.ID, &m.ProductID, &m.StoreID, &m.SupplierID, &m.UserID, &typ, &m.Quantity, &m.Price, &m.Batch,
		&m.Expiration, &m.Note, &m.BalanceAfter, &m.Verified, &m.Cancelled, &m.CancelledAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}
