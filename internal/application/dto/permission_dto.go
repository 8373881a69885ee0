package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/permission"
)

// GrantPermissionRequest body para POST /api/permissions/users/:userId.
// Grant=false crea una negación explícita. StoreID vacío = permiso global.
type GrantPermissionRequest struct {
	UserID     string          `json:"-"`
	Action     string          `json:"action" validate:"required"`
	Resource   *string         `json:"resource,omitempty"`
	StoreID    *string         `json:"store_id,omitempty"`
	Grant      bool            `json:"grant"`
	Conditions json.RawMessage `json:"conditions,omitempty" swaggertype:"array,object"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	Reason     *string         `json:"reason,omitempty"`
}

// UserPermissionResponse salida de un permiso personalizado.
type UserPermissionResponse struct {
	ID         string                  `json:"id"`
	UserID     string                  `json:"user_id"`
	Action     string                  `json:"action"`
	Resource   *string                 `json:"resource,omitempty"`
	StoreID    *string                 `json:"store_id,omitempty"`
	Grant      bool                    `json:"grant"`
	Conditions permission.ConditionSet `json:"conditions,omitempty" swaggertype:"array,object"`
	ExpiresAt  *time.Time              `json:"expires_at,omitempty"`
	Expired    bool                    `json:"expired"`
	Reason     *string                 `json:"reason,omitempty"`
	CreatedBy  string                  `json:"created_by"`
	CreatedAt  time.Time               `json:"created_at"`
}

// AssignStoreRoleRequest body para PUT /api/stores/:storeId/members/:userId.
type AssignStoreRoleRequest struct {
	UserID      string          `json:"-"`
	StoreID     string          `json:"-"`
	StoreRole   string          `json:"store_role" validate:"required,oneof=OWNER ADMIN MANAGER STAFF"`
	Permissions []string        `json:"permissions,omitempty"`
	Conditions  json.RawMessage `json:"conditions,omitempty" swaggertype:"array,object"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
}

// StoreMemberResponse asignación de un usuario a una tienda.
type StoreMemberResponse struct {
	ID          string                  `json:"id"`
	UserID      string                  `json:"user_id"`
	StoreID     string                  `json:"store_id"`
	StoreRole   string                  `json:"store_role"`
	Permissions []string                `json:"permissions"`
	Conditions  permission.ConditionSet `json:"conditions,omitempty" swaggertype:"array,object"`
	ExpiresAt   *time.Time              `json:"expires_at,omitempty"`
	Expired     bool                    `json:"expired"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// TestPermissionRequest body para POST /api/permissions/test.
type TestPermissionRequest struct {
	UserID   string                 `json:"user_id" validate:"required"`
	Action   string                 `json:"action" validate:"required"`
	Resource string                 `json:"resource,omitempty"`
	StoreID  string                 `json:"store_id,omitempty"`
	Context  *TestPermissionContext `json:"context,omitempty"`
}

// TestPermissionContext contexto hipotético: recurso concreto y momento de evaluación.
type TestPermissionContext struct {
	ResourceID string     `json:"resource_id,omitempty"`
	At         *time.Time `json:"at,omitempty"`
}

// TestPermissionResponse resultado de la simulación con la regla que decidió.
type TestPermissionResponse struct {
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	Resource    string    `json:"resource,omitempty"`
	StoreID     string    `json:"store_id,omitempty"`
	Allowed     bool      `json:"allowed"`
	Rule        string    `json:"rule"`
	SourceID    string    `json:"source_id,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// EffectivePermissionEntry una fuente de permiso con su procedencia.
type EffectivePermissionEntry struct {
	Action      string     `json:"action"`
	Resource    *string    `json:"resource,omitempty"`
	StoreID     *string    `json:"store_id,omitempty"`
	Granted     bool       `json:"granted"`
	Source      string     `json:"source"`
	SourceID    string     `json:"source_id,omitempty"`
	Conditional bool       `json:"conditional"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Reason      *string    `json:"reason,omitempty"`
}

// EffectivePermissionsResponse conjunto efectivo de permisos de un usuario.
type EffectivePermissionsResponse struct {
	UserID      string                     `json:"user_id"`
	StoreID     string                     `json:"store_id,omitempty"`
	GlobalRoles []string                   `json:"global_roles"`
	StoreRole   string                     `json:"store_role,omitempty"`
	Allowed     []string                   `json:"allowed"`
	Entries     []EffectivePermissionEntry `json:"entries"`
}

// ActionCatalogueResponse catálogo de acciones y roles para las pantallas de administración.
type ActionCatalogueResponse struct {
	Actions    []string            `json:"actions"`
	StoreRoles map[string][]string `json:"store_roles"`
	GlobalRole map[string][]string `json:"global_roles"`
}
