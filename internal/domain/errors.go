package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los mensajes de ErrProductNotFound y ErrUserNotFound son parte del contrato con la capa HTTP
// y con los clientes existentes: no traducir.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("Product not found")
	ErrUserNotFound       = errors.New("User not found")
	ErrStoreNotFound      = errors.New("tienda no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCondition   = errors.New("condición de permiso inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCategoryCycle      = errors.New("la categoría no puede ser ancestro de sí misma")
)

// IsNotFound agrupa los not-found tipados (producto, usuario, tienda) con el genérico.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrStoreNotFound)
}
