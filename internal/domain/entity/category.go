package entity

import "time"

// Category representa una categoría de productos (jerárquica, sin ciclos).
type Category struct {
	ID        string
	StoreID   string
	ParentID  *string // nil si es raíz
	Name      string
	NameKey   string // nombre normalizado (minúsculas, sin tildes) para unicidad por tienda+padre
	CreatedAt time.Time
	UpdatedAt time.Time
}
