package entity

import "time"

// Store representa una tienda (tenant). Productos, categorías, proveedores y movimientos cuelgan de ella.
type Store struct {
	ID        string
	Name      string
	OwnerID   string
	Document  string // CNPJ/CPF u otro documento fiscal
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
