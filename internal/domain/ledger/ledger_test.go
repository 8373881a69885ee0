package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
)

func in(q int64) ledger.Entry   { return ledger.Entry{Type: entity.MovementEntrada, Quantity: q} }
func out(q int64) ledger.Entry  { return ledger.Entry{Type: entity.MovementSaida, Quantity: q} }
func loss(q int64) ledger.Entry { return ledger.Entry{Type: entity.MovementPerda, Quantity: q} }

func TestFold_LibroVacio(t *testing.T) {
	b := ledger.Fold(nil)
	assert.Equal(t, int64(0), b.Stock)
	assert.False(t, b.NegativeStockDetected)
}

func TestFold_SignosPorTipo(t *testing.T) {
	tests := []struct {
		name    string
		entries []ledger.Entry
		want    int64
	}{
		{"solo entradas", []ledger.Entry{in(10), in(5)}, 15},
		{"entrada y salida", []ledger.Entry{in(10), out(4)}, 6},
		{"pérdida resta", []ledger.Entry{in(10), loss(3)}, 7},
		{"mezcla", []ledger.Entry{in(20), out(5), loss(2), in(1)}, 14},
		{"salida exacta", []ledger.Entry{in(5), out(5)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ledger.Fold(tt.entries)
			assert.Equal(t, tt.want, b.Stock)
			assert.Equal(t, tt.want, b.Raw)
			assert.False(t, b.NegativeStockDetected)
		})
	}
}

func TestFold_RecortaACeroYSenaliza(t *testing.T) {
	b := ledger.Fold([]ledger.Entry{in(3), out(5), loss(1)})
	assert.Equal(t, int64(0), b.Stock, "el stock nunca se reporta negativo")
	assert.Equal(t, int64(-3), b.Raw)
	assert.True(t, b.NegativeStockDetected, "el recorte debe quedar señalizado")
}

func TestFold_IgnoraCancelados(t *testing.T) {
	entries := []ledger.Entry{in(10), {Type: entity.MovementSaida, Quantity: 8, Cancelled: true}, out(2)}
	assert.Equal(t, int64(8), ledger.Fold(entries).Stock)
}

func TestFold_OrdenNoImporta(t *testing.T) {
	a := []ledger.Entry{in(10), out(3), loss(2), in(7)}
	b := []ledger.Entry{loss(2), in(7), out(3), in(10)}
	assert.Equal(t, ledger.Fold(a), ledger.Fold(b))
}

func TestFold_Idempotente(t *testing.T) {
	entries := []ledger.Entry{in(10), out(3)}
	assert.Equal(t, ledger.Fold(entries), ledger.Fold(entries))
}

// Aditividad: Fold(M ++ [m]) == max(0, Fold(M).Raw + delta(m)).
func TestFold_Aditividad(t *testing.T) {
	base := []ledger.Entry{in(10), out(4), loss(1)}
	nexts := []ledger.Entry{in(3), out(2), loss(5), out(50)}

	for _, next := range nexts {
		before := ledger.Fold(base)
		after := ledger.Fold(append(append([]ledger.Entry{}, base...), next))

		want := before.Raw + ledger.Delta(next.Type, next.Quantity)
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, after.Stock)
		assert.GreaterOrEqual(t, after.Stock, int64(0))
		assert.Equal(t, after, before.Apply(next), "Apply debe coincidir con recalcular")
	}
}

func TestDelta_TipoDesconocido(t *testing.T) {
	assert.Equal(t, int64(0), ledger.Delta(entity.MovementType("AJUSTE"), 10))
}

func TestFromMovements(t *testing.T) {
	ms := []*entity.Movement{
		{Type: entity.MovementEntrada, Quantity: 10},
		nil,
		{Type: entity.MovementSaida, Quantity: 4, Cancelled: true},
	}
	entries := ledger.FromMovements(ms)
	assert.Len(t, entries, 2)
	assert.Equal(t, int64(10), ledger.Fold(entries).Stock)
}
