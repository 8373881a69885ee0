package permission

import "time"

// UserPermission permiso personalizado de un usuario: concede (Grant=true) o niega explícitamente.
// StoreID nil = aplica en todas las tiendas. Resource nil = cualquier recurso.
type UserPermission struct {
	ID         string
	UserID     string
	Action     string
	Resource   *string
	StoreID    *string
	Grant      bool
	Conditions ConditionSet
	ExpiresAt  *time.Time
	Reason     *string
	CreatedBy  string
	CreatedAt  time.Time
}

// Active: un permiso con ExpiresAt anterior a now es inerte.
func (p UserPermission) Active(now time.Time) bool {
	return p.ExpiresAt == nil || !p.ExpiresAt.Before(now)
}

// StoreUserPermission asignación de un usuario a una tienda con rol y lista explícita de acciones.
// Una asignación lógica por (usuario, tienda).
type StoreUserPermission struct {
	ID          string
	UserID      string
	StoreID     string
	StoreRole   StoreRole
	Permissions []string
	Conditions  ConditionSet
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Active: misma regla de expiración que UserPermission.
func (a StoreUserPermission) Active(now time.Time) bool {
	return a.ExpiresAt == nil || !a.ExpiresAt.Before(now)
}

// HasPermission informa si la lista explícita contiene la acción (o el comodín).
func (a StoreUserPermission) HasPermission(action string) bool {
	for _, p := range a.Permissions {
		if p == action || p == Wildcard {
			return true
		}
	}
	return false
}

// Snapshot todo lo que el resolvedor necesita de un usuario, cargado de una vez por petición.
type Snapshot struct {
	UserID           string
	GlobalRoles      []string
	UserPermissions  []UserPermission
	StoreAssignments []StoreUserPermission
	Inactive         bool // usuario inactivo o suspendido; Check lo rechaza antes de resolver
}
