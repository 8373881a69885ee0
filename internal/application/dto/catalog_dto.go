package dto

import "time"

// CategoryRequest entrada para crear o renombrar/mover una categoría.
type CategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryNode categoría con sus hijas (árbol).
type CategoryNode struct {
	CategoryResponse
	Children []CategoryNode `json:"children"`
}

// SupplierRequest entrada para crear/actualizar un proveedor.
type SupplierRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Document string `json:"document"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
