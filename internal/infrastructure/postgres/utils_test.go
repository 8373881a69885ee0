package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain/permission"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isForeignKeyViolation(err))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}

func TestConditionsJSON_VacioEsArreglo(t *testing.T) {
	b, err := conditionsJSON(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))

	set, err := parseConditions(nil)
	require.NoError(t, err)
	assert.Empty(t, set)

	set, err = parseConditions([]byte("null"))
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestConditionsJSON_IdaYVuelta(t *testing.T) {
	raw := []byte(`[{"type":"resource_id_in","ids":["p1","p2"]}]`)
	set, err := permission.ParseConditions(raw)
	require.NoError(t, err)

	b, err := conditionsJSON(set)
	require.NoError(t, err)
	back, err := parseConditions(b)
	require.NoError(t, err)
	assert.Equal(t, set, back)
}
