package entity

import "time"

// Roles globales válidos para User.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"
)

// Estados de usuario.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema. Puede pertenecer a varias tiendas vía StoreUserPermission.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Roles        []string // roles globales: SUPER_ADMIN, ADMIN, USER
	Status       string   // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
