// Package ledger reconstruye el stock a partir del libro de movimientos.
// Es lógica pura de dominio: sin I/O, segura para llamadas concurrentes.
package ledger

import "github.com/jhoicas/Estoque-api/internal/domain/entity"

// Entry es la mínima información de un movimiento que afecta el stock.
// Puede representar un movimiento individual o una suma ya agregada por tipo.
type Entry struct {
	Type      entity.MovementType
	Quantity  int64
	Cancelled bool
}

// Balance resultado de reconstruir el libro.
type Balance struct {
	Stock                 int64 // max(0, Raw)
	Raw                   int64 // suma con signo sin recortar
	NegativeStockDetected bool  // Raw < 0: el libro es inconsistente y Stock fue recortado a 0
}

// Delta devuelve el efecto con signo de un movimiento: +q para ENTRADA, -q para SAIDA/PERDA.
// Tipos desconocidos no afectan el stock.
func Delta(t entity.MovementType, quantity int64) int64 {
	switch t {
	case entity.MovementEntrada:
		return quantity
	case entity.MovementSaida, entity.MovementPerda:
		return -quantity
	default:
		return 0
	}
}

// Fold suma las entradas en cualquier orden. Las canceladas se ignoran.
func Fold(entries []Entry) Balance {
	var raw int64
	for _, e := range entries {
		if e.Cancelled {
			continue
		}
		raw += Delta(e.Type, e.Quantity)
	}
	return FromRaw(raw)
}

// FromRaw aplica la política de recorte a cero sobre un total ya calculado.
func FromRaw(raw int64) Balance {
	b := Balance{Stock: raw, Raw: raw}
	if raw < 0 {
		b.Stock = 0
		b.NegativeStockDetected = true
	}
	return b
}

// Apply devuelve el balance tras añadir una entrada al total crudo actual.
func (b Balance) Apply(e Entry) Balance {
	if e.Cancelled {
		return b
	}
	return FromRaw(b.Raw + Delta(e.Type, e.Quantity))
}

// FromMovements adapta movimientos completos a entradas del libro.
func FromMovements(movements []*entity.Movement) []Entry {
	entries := make([]Entry, 0, len(movements))
	for _, m := range movements {
		if m == nil {
			continue
		}
		entries = append(entries, Entry{Type: m.Type, Quantity: m.Quantity, Cancelled: m.Cancelled})
	}
	return entries
}
