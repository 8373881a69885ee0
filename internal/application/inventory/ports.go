package inventory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio de
// movimientos atado a esa tx. Garantiza que lectura del saldo, validación y append sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(movRepo repository.MovementRepository) error) error
}

// Observer recibe las señales operativas del libro (métricas).
type Observer interface {
	ObserveNegativeStock()
	ObserveMovement(movementType string)
}

type nopObserver struct{}

func (nopObserver) ObserveNegativeStock()  {}
func (nopObserver) ObserveMovement(string) {}
