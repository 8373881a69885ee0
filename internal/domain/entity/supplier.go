package entity

import "time"

// Supplier proveedor de una tienda.
type Supplier struct {
	ID        string
	StoreID   string
	Name      string
	NameKey   string
	Document  string
	Email     string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
