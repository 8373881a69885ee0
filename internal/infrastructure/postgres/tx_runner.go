package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.StoreTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con el repo de movimientos atado a la tx. El lock del libro
// (LockLedger) se libera con el Commit o el Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewMovementRepository(tx))
	})
}

// RunStore crea tienda y asignación del dueño en la misma transacción.
func (r *TxRunner) RunStore(ctx context.Context, fn func(stores repository.StoreRepository, perms repository.PermissionRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStoreRepository(tx), NewPermissionRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
