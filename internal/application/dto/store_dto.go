package dto

import "time"

// CreateStoreRequest entrada para crear una tienda; el creador queda como OWNER.
type CreateStoreRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Document string `json:"document"`
}

// UpdateStoreRequest entrada para actualizar una tienda.
type UpdateStoreRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Document *string `json:"document"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	Document  string    `json:"document"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
