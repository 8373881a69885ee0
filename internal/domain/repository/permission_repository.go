package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/permission"
)

// PermissionRepository persistencia de permisos personalizados y asignaciones por tienda.
// Los listados incluyen registros vencidos: la expiración se evalúa al resolver.
type PermissionRepository interface {
	ListUserPermissions(ctx context.Context, userID string) ([]permission.UserPermission, error)
	GetUserPermission(ctx context.Context, id string) (*permission.UserPermission, error)
	CreateUserPermission(ctx context.Context, p *permission.UserPermission) error
	DeleteUserPermission(ctx context.Context, id string) error

	ListStoreAssignments(ctx context.Context, userID string) ([]permission.StoreUserPermission, error)
	ListStoreMembers(ctx context.Context, storeID string) ([]permission.StoreUserPermission, error)
	// UpsertStoreAssignment crea o reemplaza la asignación (user, store).
	UpsertStoreAssignment(ctx context.Context, a *permission.StoreUserPermission) error
	DeleteStoreAssignment(ctx context.Context, userID, storeID string) error
}
