package permission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
)

// GrantPermission crea un permiso personalizado (concesión o negación). Las condiciones se
// validan aquí: una condición mal formada nunca llega a la base.
func (uc *UseCase) GrantPermission(ctx context.Context, createdBy string, in dto.GrantPermissionRequest) (*dto.UserPermissionResponse, error) {
	if in.Action != domperm.Wildcard && !domperm.IsKnownAction(in.Action) {
		return nil, fmt.Errorf("%w: acción desconocida %q", domain.ErrInvalidInput, in.Action)
	}
	now := uc.now()
	if in.ExpiresAt != nil && in.ExpiresAt.Before(now) {
		return nil, fmt.Errorf("%w: expires_at en el pasado", domain.ErrInvalidInput)
	}
	conds, err := domperm.ParseConditions(in.Conditions)
	if err != nil {
		return nil, err
	}
	if err := uc.requireUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	storeID := emptyToNil(in.StoreID)
	if storeID != nil && !domperm.IsStoreScoped(in.Action) {
		return nil, fmt.Errorf("%w: %q no es una acción de tienda", domain.ErrInvalidInput, in.Action)
	}
	if storeID != nil {
		if err := uc.requireStore(ctx, *storeID); err != nil {
			return nil, err
		}
	}

	p := &domperm.UserPermission{
		ID:         uuid.New().String(),
		UserID:     in.UserID,
		Action:     in.Action,
		Resource:   emptyToNil(in.Resource),
		StoreID:    storeID,
		Grant:      in.Grant,
		Conditions: conds,
		ExpiresAt:  in.ExpiresAt,
		Reason:     in.Reason,
		CreatedBy:  createdBy,
		CreatedAt:  now,
	}
	if err := uc.permRepo.CreateUserPermission(ctx, p); err != nil {
		return nil, err
	}
	uc.InvalidateUser(ctx, in.UserID)
	uc.log.Info().
		Str("permission_id", p.ID).
		Str("user_id", p.UserID).
		Str("action", p.Action).
		Bool("grant", p.Grant).
		Str("created_by", createdBy).
		Msg("permiso personalizado creado")
	return toUserPermissionResponse(*p, now), nil
}

// RevokePermission elimina un permiso personalizado. storeID no vacío exige que el permiso
// pertenezca a esa tienda (administradores de tienda no tocan permisos globales).
func (uc *UseCase) RevokePermission(ctx context.Context, permissionID, storeID string) error {
	p, err := uc.permRepo.GetUserPermission(ctx, permissionID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if storeID != "" && (p.StoreID == nil || *p.StoreID != storeID) {
		return domain.ErrNotFound
	}
	if err := uc.permRepo.DeleteUserPermission(ctx, p.ID); err != nil {
		return err
	}
	uc.InvalidateUser(ctx, p.UserID)
	uc.log.Info().Str("permission_id", p.ID).Str("user_id", p.UserID).Msg("permiso personalizado revocado")
	return nil
}

// ListUserPermissions lista los permisos personalizados del usuario, vencidos incluidos.
func (uc *UseCase) ListUserPermissions(ctx context.Context, userID string) ([]dto.UserPermissionResponse, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	list, err := uc.permRepo.ListUserPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.UserPermissionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toUserPermissionResponse(p, now))
	}
	return out, nil
}

// AssignStoreRole crea o reemplaza la asignación del usuario en la tienda.
// Asignar OWNER exige que actorID pueda DELETE_STORE en esa tienda.
func (uc *UseCase) AssignStoreRole(ctx context.Context, actorID string, in dto.AssignStoreRoleRequest) (*dto.StoreMemberResponse, error) {
	role := domperm.StoreRole(in.StoreRole)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol de tienda %q", domain.ErrInvalidInput, in.StoreRole)
	}
	// La lista explícita solo admite acciones de tienda; el comodín y las acciones de
	// plataforma quedan para roles globales.
	for _, a := range in.Permissions {
		if !domperm.IsStoreScoped(a) {
			return nil, fmt.Errorf("%w: %q no es una acción de tienda", domain.ErrInvalidInput, a)
		}
	}
	now := uc.now()
	if in.ExpiresAt != nil && in.ExpiresAt.Before(now) {
		return nil, fmt.Errorf("%w: expires_at en el pasado", domain.ErrInvalidInput)
	}
	conds, err := domperm.ParseConditions(in.Conditions)
	if err != nil {
		return nil, err
	}
	if err := uc.requireUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := uc.requireStore(ctx, in.StoreID); err != nil {
		return nil, err
	}
	if role == domperm.StoreRoleOwner && actorID != "" {
		d, err := uc.Check(ctx, actorID, domperm.ActionDeleteStore, "", in.StoreID)
		if err != nil {
			return nil, err
		}
		if !d.Allowed {
			return nil, domain.ErrForbidden
		}
	}

	perms := in.Permissions
	if perms == nil {
		perms = []string{}
	}
	a := &domperm.StoreUserPermission{
		ID:          uuid.New().String(),
		UserID:      in.UserID,
		StoreID:     in.StoreID,
		StoreRole:   role,
		Permissions: perms,
		Conditions:  conds,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.permRepo.UpsertStoreAssignment(ctx, a); err != nil {
		return nil, err
	}
	uc.InvalidateUser(ctx, in.UserID)
	uc.log.Info().
		Str("user_id", a.UserID).
		Str("store_id", a.StoreID).
		Str("store_role", string(a.StoreRole)).
		Str("actor_id", actorID).
		Msg("rol de tienda asignado")
	return toStoreMemberResponse(*a, now), nil
}

// RemoveStoreRole quita la asignación. El dueño registrado de la tienda no se puede quitar.
func (uc *UseCase) RemoveStoreRole(ctx context.Context, userID, storeID string) error {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrStoreNotFound
	}
	if store.OwnerID == userID {
		return fmt.Errorf("%w: no se puede quitar al dueño de la tienda", domain.ErrConflict)
	}
	if err := uc.permRepo.DeleteStoreAssignment(ctx, userID, storeID); err != nil {
		return err
	}
	uc.InvalidateUser(ctx, userID)
	uc.log.Info().Str("user_id", userID).Str("store_id", storeID).Msg("rol de tienda removido")
	return nil
}

// ListStoreMembers lista las asignaciones de una tienda.
func (uc *UseCase) ListStoreMembers(ctx context.Context, storeID string) ([]dto.StoreMemberResponse, error) {
	if err := uc.requireStore(ctx, storeID); err != nil {
		return nil, err
	}
	list, err := uc.permRepo.ListStoreMembers(ctx, storeID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.StoreMemberResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toStoreMemberResponse(a, now))
	}
	return out, nil
}

func (uc *UseCase) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUserNotFound
	}
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return nil
}

func (uc *UseCase) requireStore(ctx context.Context, storeID string) error {
	if storeID == "" {
		return domain.ErrStoreNotFound
	}
	s, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrStoreNotFound
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func toUserPermissionResponse(p domperm.UserPermission, now time.Time) *dto.UserPermissionResponse {
	return &dto.UserPermissionResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Action:     p.Action,
		Resource:   p.Resource,
		StoreID:    p.StoreID,
		Grant:      p.Grant,
		Conditions: p.Conditions,
		ExpiresAt:  p.ExpiresAt,
		Expired:    !p.Active(now),
		Reason:     p.Reason,
		CreatedBy:  p.CreatedBy,
		CreatedAt:  p.CreatedAt,
	}
}

func toStoreMemberResponse(a domperm.StoreUserPermission, now time.Time) *dto.StoreMemberResponse {
	return &dto.StoreMemberResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		StoreID:     a.StoreID,
		StoreRole:   string(a.StoreRole),
		Permissions: a.Permissions,
		Conditions:  a.Conditions,
		ExpiresAt:   a.ExpiresAt,
		Expired:     !a.Active(now),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
