package permission

import "sort"

// StoreRole rol dentro de una tienda. OWNER > ADMIN > MANAGER > STAFF.
type StoreRole string

// Roles por tienda.
const (
	StoreRoleOwner   StoreRole = "OWNER"
	StoreRoleAdmin   StoreRole = "ADMIN"
	StoreRoleManager StoreRole = "MANAGER"
	StoreRoleStaff   StoreRole = "STAFF"
)

// Roles globales (mismos valores que entity.Role*).
const (
	GlobalRoleSuperAdmin = "SUPER_ADMIN"
	GlobalRoleAdmin      = "ADMIN"
	GlobalRoleUser       = "USER"
)

// Valid informa si el rol es uno de los admitidos.
func (r StoreRole) Valid() bool {
	return r.Rank() > 0
}

// Rank posición en la jerarquía (0 = desconocido).
func (r StoreRole) Rank() int {
	switch r {
	case StoreRoleOwner:
		return 4
	case StoreRoleAdmin:
		return 3
	case StoreRoleManager:
		return 2
	case StoreRoleStaff:
		return 1
	}
	return 0
}

type actionSet map[string]struct{}

func newActionSet(actions ...string) actionSet {
	s := make(actionSet, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

func (s actionSet) with(actions ...string) actionSet {
	out := make(actionSet, len(s)+len(actions))
	for a := range s {
		out[a] = struct{}{}
	}
	for _, a := range actions {
		out[a] = struct{}{}
	}
	return out
}

func (s actionSet) allows(action string) bool {
	if _, ok := s[Wildcard]; ok {
		return true
	}
	_, ok := s[action]
	return ok
}

func (s actionSet) sorted() []string {
	out := make([]string, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// roleTable es la única fuente de permisos implícitos por rol. Se construye una vez
// al iniciar el proceso y no se modifica; las lecturas devuelven copias.
type roleTable struct {
	global map[string]actionSet
	store  map[StoreRole]actionSet
}

var roles = buildRoleTable()

func buildRoleTable() roleTable {
	staff := newActionSet(
		ActionReadStore, ActionReadProduct, ActionReadStock,
		ActionReadMovement, ActionCreateMovement,
	)
	manager := staff.with(
		ActionCreateProduct, ActionUpdateProduct, ActionVerifyMovement,
		ActionReadReports, ActionManageCategories, ActionManageSuppliers,
	)
	admin := manager.with(
		ActionDeleteProduct, ActionCancelMovement, ActionUpdateStore,
		ActionManageStoreUsers, ActionManagePermissions,
	)
	owner := newActionSet(storeScopedActions...)

	return roleTable{
		global: map[string]actionSet{
			GlobalRoleSuperAdmin: newActionSet(Wildcard),
			GlobalRoleAdmin: newActionSet(
				ActionCreateStore, ActionListStores, ActionManageUsers, ActionManagePermissions,
				ActionReadStore, ActionReadProduct, ActionReadStock, ActionReadMovement, ActionReadReports,
			),
			GlobalRoleUser: newActionSet(ActionCreateStore),
		},
		store: map[StoreRole]actionSet{
			StoreRoleOwner:   owner,
			StoreRoleAdmin:   admin,
			StoreRoleManager: manager,
			StoreRoleStaff:   staff,
		},
	}
}

// GlobalRoleAllows informa si el rol global implica la acción.
func GlobalRoleAllows(role, action string) bool {
	set, ok := roles.global[role]
	return ok && set.allows(action)
}

// StoreRoleAllows informa si el rol de tienda implica la acción.
func StoreRoleAllows(role StoreRole, action string) bool {
	set, ok := roles.store[role]
	return ok && set.allows(action)
}

// GlobalRoleActions acciones implícitas de un rol global (copia ordenada).
func GlobalRoleActions(role string) []string {
	return roles.global[role].sorted()
}

// StoreRoleActions acciones implícitas de un rol de tienda (copia ordenada).
func StoreRoleActions(role StoreRole) []string {
	return roles.store[role].sorted()
}

// IsGlobalRole valida un rol global.
func IsGlobalRole(role string) bool {
	_, ok := roles.global[role]
	return ok
}
