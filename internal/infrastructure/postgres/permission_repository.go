package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/permission"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo permisos personalizados (user_permissions) y asignaciones por tienda
// (store_user_permissions). Las condiciones se guardan como JSONB.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

const userPermissionSelect = `
	SELECT id, user_id, action, resource, store_id, granted, conditions, expires_at, reason,
		COALESCE(created_by::text, ''), created_at
	FROM user_permissions`

const assignmentSelect = `
	SELECT id, user_id, store_id, store_role, permissions, conditions, expires_at, created_at, updated_at
	FROM store_user_permissions`

// ListUserPermissions incluye vencidos; el resolvedor los ignora.
func (r *PermissionRepo) ListUserPermissions(ctx context.Context, userID string) ([]permission.UserPermission, error) {
	rows, err := r.q.Query(ctx, userPermissionSelect+` WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user permissions: %w", err)
	}
	defer rows.Close()

	var list []permission.UserPermission
	for rows.Next() {
		p, err := scanUserPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user permission: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// GetUserPermission (nil, nil) si no existe.
func (r *PermissionRepo) GetUserPermission(ctx context.Context, id string) (*permission.UserPermission, error) {
	p, err := scanUserPermission(r.q.QueryRow(ctx, userPermissionSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user permission: %w", err)
	}
	return p, nil
}

// CreateUserPermission persiste una concesión o negación.
func (r *PermissionRepo) CreateUserPermission(ctx context.Context, p *permission.UserPermission) error {
	conds, err := conditionsJSON(p.Conditions)
	if err != nil {
		return fmt.Errorf("encode conditions: %w", err)
	}
	var createdBy *string
	if p.CreatedBy != "" {
		createdBy = &p.CreatedBy
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO user_permissions (id, user_id, action, resource, store_id, granted, conditions, expires_at, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.Action, p.Resource, p.StoreID, p.Grant, conds, p.ExpiresAt, p.Reason, createdBy, p.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert user permission: %w", err)
	}
	return nil
}

// DeleteUserPermission revoca; ErrNotFound si no existía.
func (r *PermissionRepo) DeleteUserPermission(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_permissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListStoreAssignments asignaciones del usuario en todas sus tiendas.
func (r *PermissionRepo) ListStoreAssignments(ctx context.Context, userID string) ([]permission.StoreUserPermission, error) {
	return r.listAssignments(ctx, assignmentSelect+` WHERE user_id = $1 ORDER BY store_id`, userID)
}

// ListStoreMembers asignaciones de la tienda.
func (r *PermissionRepo) ListStoreMembers(ctx context.Context, storeID string) ([]permission.StoreUserPermission, error) {
	return r.listAssignments(ctx, assignmentSelect+` WHERE store_id = $1 ORDER BY created_at, user_id`, storeID)
}

// UpsertStoreAssignment una fila por (user, store): si existe, se reemplaza y conserva su id.
func (r *PermissionRepo) UpsertStoreAssignment(ctx context.Context, a *permission.StoreUserPermission) error {
	conds, err := conditionsJSON(a.Conditions)
	if err != nil {
		return fmt.Errorf("encode conditions: %w", err)
	}
	perms := a.Permissions
	if perms == nil {
		perms = []string{}
	}
	err = r.q.QueryRow(ctx, `
		INSERT INTO store_user_permissions (id, user_id, store_id, store_role, permissions, conditions, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, store_id) DO UPDATE SET
			store_role = EXCLUDED.store_role,
			permissions = EXCLUDED.permissions,
			conditions = EXCLUDED.conditions,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`,
		a.ID, a.UserID, a.StoreID, string(a.StoreRole), perms, conds, a.ExpiresAt, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert store assignment: %w", err)
	}
	return nil
}

// DeleteStoreAssignment quita al usuario de la tienda.
func (r *PermissionRepo) DeleteStoreAssignment(ctx context.Context, userID, storeID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM store_user_permissions WHERE user_id = $1 AND store_id = $2`, userID, storeID)
	if err != nil {
		return fmt.Errorf("delete store assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PermissionRepo) listAssignments(ctx context.Context, query string, arg string) ([]permission.StoreUserPermission, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list store assignments: %w", err)
	}
	defer rows.Close()

	var list []permission.StoreUserPermission
	for rows.Next() {
		var (
			a    permission.StoreUserPermission
			role string
			raw  []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.StoreID, &role, &a.Permissions, &raw, &a.ExpiresAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store assignment: %w", err)
		}
		a.StoreRole = permission.StoreRole(role)
		if a.Conditions, err = parseConditions(raw); err != nil {
			return nil, fmt.Errorf("assignment %s: %w", a.ID, err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanUserPermission(row pgx.Row) (*permission.UserPermission, error) {
	var (
		p   permission.UserPermission
		raw []byte
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Action, &p.Resource, &p.StoreID, &p.Grant, &raw, &p.ExpiresAt, &p.Reason, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.Conditions, err = parseConditions(raw); err != nil {
		return nil, fmt.Errorf("permission %s: %w", p.ID, err)
	}
	return &p, nil
}
