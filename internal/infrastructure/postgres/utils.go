package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Estoque-api/internal/domain/permission"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repos no distinguen si corren en transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation (23503): referencia a una fila que no existe o que aún tiene dependientes.
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// conditionsJSON serializa condiciones para columnas JSONB; nil → "[]".
func conditionsJSON(set permission.ConditionSet) ([]byte, error) {
	return json.Marshal(set)
}

// parseConditions lee la columna JSONB; vacío o null equivale a sin condiciones.
func parseConditions(raw []byte) (permission.ConditionSet, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return permission.ParseConditions(raw)
}
