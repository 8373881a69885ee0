package permission

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/Estoque-api/internal/application/permission")

// UseCase resolución de permisos y administración de permisos personalizados y asignaciones.
// Carga un snapshot del usuario (cacheable) y delega la decisión en el resolvedor de dominio.
type UseCase struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	permRepo  repository.PermissionRepository
	cache     SnapshotCache
	log       *logger.Logger
	obs       Observer
	now       func() time.Time
}

// NewUseCase construye el caso de uso. cache, log y obs pueden ser nil.
func NewUseCase(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	permRepo repository.PermissionRepository,
	cache SnapshotCache,
	log *logger.Logger,
	obs Observer,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &UseCase{
		userRepo:  userRepo,
		storeRepo: storeRepo,
		permRepo:  permRepo,
		cache:     cache,
		log:       log,
		obs:       obs,
		now:       time.Now,
	}
}

// Check decide si userID puede ejecutar action sobre resource en storeID (ambos opcionales).
// Usuario inexistente → domain.ErrUserNotFound; inactivo o suspendido → domain.ErrUnauthorized.
func (uc *UseCase) Check(ctx context.Context, userID, action, resource, storeID string) (domperm.Decision, error) {
	ctx, span := tracer.Start(ctx, "permission.Check")
	defer span.End()

	snap, err := uc.loadSnapshot(ctx, userID)
	if err != nil {
		return domperm.Decision{}, err
	}
	if snap.Inactive {
		return domperm.Decision{}, domain.ErrUnauthorized
	}
	d := domperm.Resolve(snap, domperm.Request{
		Action:   action,
		Resource: resource,
		StoreID:  storeID,
		Context:  domperm.RequestContext{ResourceID: resource},
	}, uc.now())
	uc.obs.ObservePermissionDecision(string(d.Rule), d.Allowed)
	span.SetAttributes(
		attribute.String("action", action),
		attribute.String("store_id", storeID),
		attribute.String("rule", string(d.Rule)),
		attribute.Bool("allowed", d.Allowed),
	)
	return d, nil
}

// TestPermission ejecuta la resolución contra un contexto hipotético (recurso concreto y/o
// instante) y devuelve el resultado con la regla que decidió. No tiene efectos.
func (uc *UseCase) TestPermission(ctx context.Context, in dto.TestPermissionRequest) (*dto.TestPermissionResponse, error) {
	if in.UserID == "" || in.Action == "" {
		return nil, domain.ErrInvalidInput
	}
	snap, err := uc.loadSnapshot(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	reqCtx := domperm.RequestContext{ResourceID: in.Resource, At: now}
	if in.Context != nil {
		if in.Context.ResourceID != "" {
			reqCtx.ResourceID = in.Context.ResourceID
		}
		if in.Context.At != nil {
			reqCtx.At = *in.Context.At
		}
	}
	// La expiración se evalúa contra el mismo instante hipotético que las condiciones.
	d := domperm.Resolve(snap, domperm.Request{
		Action:   in.Action,
		Resource: in.Resource,
		StoreID:  in.StoreID,
		Context:  reqCtx,
	}, reqCtx.At)

	return &dto.TestPermissionResponse{
		UserID:      in.UserID,
		Action:      in.Action,
		Resource:    in.Resource,
		StoreID:     in.StoreID,
		Allowed:     d.Allowed,
		Rule:        string(d.Rule),
		SourceID:    d.SourceID,
		EvaluatedAt: reqCtx.At,
	}, nil
}

// GetUserEffectivePermissions une permisos personalizados, asignación de la tienda y roles,
// anotados con su procedencia. Usuario inexistente → domain.ErrUserNotFound.
func (uc *UseCase) GetUserEffectivePermissions(ctx context.Context, userID, storeID string) (*dto.EffectivePermissionsResponse, error) {
	ctx, span := tracer.Start(ctx, "permission.GetUserEffectivePermissions")
	defer span.End()

	snap, err := uc.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	eff := domperm.ComputeEffective(snap, storeID, now)

	out := &dto.EffectivePermissionsResponse{
		UserID:      userID,
		StoreID:     storeID,
		GlobalRoles: append([]string{}, snap.GlobalRoles...),
		Allowed:     append([]string{}, eff.Allowed...),
		Entries:     make([]dto.EffectivePermissionEntry, 0, len(eff.Entries)),
	}
	if storeID != "" {
		for _, a := range snap.StoreAssignments {
			if a.StoreID == storeID && a.Active(now) {
				out.StoreRole = string(a.StoreRole)
			}
		}
	}
	for _, e := range eff.Entries {
		out.Entries = append(out.Entries, dto.EffectivePermissionEntry{
			Action:      e.Action,
			Resource:    e.Resource,
			StoreID:     e.StoreID,
			Granted:     e.Granted,
			Source:      string(e.Source),
			SourceID:    e.SourceID,
			Conditional: e.Conditional,
			ExpiresAt:   e.ExpiresAt,
			Reason:      e.Reason,
		})
	}
	return out, nil
}

// Catalogue devuelve las acciones conocidas y lo que implica cada rol.
func (uc *UseCase) Catalogue() dto.ActionCatalogueResponse {
	out := dto.ActionCatalogueResponse{
		Actions:    domperm.Catalogue(),
		StoreRoles: map[string][]string{},
		GlobalRole: map[string][]string{},
	}
	for _, r := range []domperm.StoreRole{domperm.StoreRoleOwner, domperm.StoreRoleAdmin, domperm.StoreRoleManager, domperm.StoreRoleStaff} {
		out.StoreRoles[string(r)] = domperm.StoreRoleActions(r)
	}
	for _, r := range []string{domperm.GlobalRoleSuperAdmin, domperm.GlobalRoleAdmin, domperm.GlobalRoleUser} {
		out.GlobalRole[r] = domperm.GlobalRoleActions(r)
	}
	return out
}

// InvalidateUser descarta el snapshot cacheado (p. ej. tras cambiar los roles globales).
func (uc *UseCase) InvalidateUser(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo invalidar el cache de permisos")
	}
}

// loadSnapshot lee del cache si existe; si falla el cache se consulta la base.
func (uc *UseCase) loadSnapshot(ctx context.Context, userID string) (domperm.Snapshot, error) {
	if userID == "" {
		return domperm.Snapshot{}, domain.ErrUserNotFound
	}
	if uc.cache != nil {
		snap, ok, err := uc.cache.Get(ctx, userID)
		switch {
		case err != nil:
			uc.obs.ObserveCache("error")
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("cache de permisos no disponible")
		case ok:
			uc.obs.ObserveCache("hit")
			return *snap, nil
		default:
			uc.obs.ObserveCache("miss")
		}
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domperm.Snapshot{}, err
	}
	if user == nil {
		return domperm.Snapshot{}, domain.ErrUserNotFound
	}
	perms, err := uc.permRepo.ListUserPermissions(ctx, userID)
	if err != nil {
		return domperm.Snapshot{}, err
	}
	assignments, err := uc.permRepo.ListStoreAssignments(ctx, userID)
	if err != nil {
		return domperm.Snapshot{}, err
	}
	snap := domperm.Snapshot{
		UserID:           user.ID,
		GlobalRoles:      append([]string{}, user.Roles...),
		UserPermissions:  perms,
		StoreAssignments: assignments,
		Inactive:         user.Status != entity.UserStatusActive,
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, snap); err != nil {
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo cachear el snapshot de permisos")
		}
	}
	return snap, nil
}
