// Package permission resuelve permisos efectivos combinando permisos por usuario,
// asignaciones por tienda y roles globales. No hace I/O: trabaja sobre un Snapshot.
package permission

import "sort"

// Wildcard en un permiso o en la tabla de roles significa "cualquier acción".
const Wildcard = "*"

// Acciones con alcance de tienda.
const (
	ActionReadStore         = "READ_STORE"
	ActionUpdateStore       = "UPDATE_STORE"
	ActionDeleteStore       = "DELETE_STORE"
	ActionManageStoreUsers  = "MANAGE_STORE_USERS"
	ActionManagePermissions = "MANAGE_PERMISSIONS"

	ActionCreateProduct = "CREATE_PRODUCT"
	ActionReadProduct   = "READ_PRODUCT"
	ActionUpdateProduct = "UPDATE_PRODUCT"
	ActionDeleteProduct = "DELETE_PRODUCT"

	ActionCreateMovement = "CREATE_MOVEMENT"
	ActionReadMovement   = "READ_MOVEMENT"
	ActionVerifyMovement = "VERIFY_MOVEMENT"
	ActionCancelMovement = "CANCEL_MOVEMENT"

	ActionReadStock   = "READ_STOCK"
	ActionReadReports = "READ_REPORTS"

	ActionManageCategories = "MANAGE_CATEGORIES"
	ActionManageSuppliers  = "MANAGE_SUPPLIERS"
)

// Acciones sin alcance de tienda (administración de la plataforma).
const (
	ActionCreateStore = "CREATE_STORE"
	ActionManageUsers = "MANAGE_USERS"
	ActionListStores  = "LIST_ALL_STORES"
)

var storeScopedActions = []string{
	ActionReadStore, ActionUpdateStore, ActionDeleteStore, ActionManageStoreUsers, ActionManagePermissions,
	ActionCreateProduct, ActionReadProduct, ActionUpdateProduct, ActionDeleteProduct,
	ActionCreateMovement, ActionReadMovement, ActionVerifyMovement, ActionCancelMovement,
	ActionReadStock, ActionReadReports,
	ActionManageCategories, ActionManageSuppliers,
}

var globalActions = []string{ActionCreateStore, ActionManageUsers, ActionListStores}

// StoreScopedActions devuelve (copia) las acciones que se resuelven dentro de una tienda.
func StoreScopedActions() []string {
	return append([]string(nil), storeScopedActions...)
}

// Catalogue devuelve (copia ordenada) todas las acciones conocidas.
func Catalogue() []string {
	all := make([]string, 0, len(storeScopedActions)+len(globalActions))
	all = append(all, storeScopedActions...)
	all = append(all, globalActions...)
	sort.Strings(all)
	return all
}

// IsStoreScoped informa si la acción se resuelve dentro de una tienda. Las acciones de plataforma
// (y el comodín) no: solo las conceden permisos sin tienda y roles globales.
func IsStoreScoped(action string) bool {
	for _, a := range storeScopedActions {
		if a == action {
			return true
		}
	}
	return false
}

// IsKnownAction valida una acción contra el catálogo (el comodín también es válido).
func IsKnownAction(action string) bool {
	if action == Wildcard {
		return true
	}
	for _, a := range storeScopedActions {
		if a == action {
			return true
		}
	}
	for _, a := range globalActions {
		if a == action {
			return true
		}
	}
	return false
}
