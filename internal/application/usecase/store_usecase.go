package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/permission"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// Estados de tienda.
const (
	storeActive   = "active"
	storeInactive = "inactive"
)

// StoreTxRunner ejecuta la creación de la tienda y la asignación del dueño en una misma tx.
type StoreTxRunner interface {
	RunStore(ctx context.Context, fn func(stores repository.StoreRepository, perms repository.PermissionRepository) error) error
}

// PermissionInvalidator descarta el snapshot de permisos cacheado de un usuario.
type PermissionInvalidator interface {
	InvalidateUser(ctx context.Context, userID string)
}

// StoreUseCase alta y consulta de tiendas (tenants).
type StoreUseCase struct {
	repo        repository.StoreRepository
	txRunner    StoreTxRunner
	invalidator PermissionInvalidator
}

// NewStoreUseCase construye el caso de uso. invalidator puede ser nil.
func NewStoreUseCase(repo repository.StoreRepository, txRunner StoreTxRunner, invalidator PermissionInvalidator) *StoreUseCase {
	return &StoreUseCase{repo: repo, txRunner: txRunner, invalidator: invalidator}
}

// Create crea la tienda y asigna a ownerID como OWNER en la misma transacción.
func (uc *StoreUseCase) Create(ctx context.Context, ownerID string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || ownerID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		Document:  strings.TrimSpace(in.Document),
		Status:    storeActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &permission.StoreUserPermission{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		StoreID:     store.ID,
		StoreRole:   permission.StoreRoleOwner,
		Permissions: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.RunStore(ctx, func(stores repository.StoreRepository, perms repository.PermissionRepository) error {
		if err := stores.Create(ctx, store); err != nil {
			return err
		}
		return perms.UpsertStoreAssignment(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	if uc.invalidator != nil {
		uc.invalidator.InvalidateUser(ctx, ownerID)
	}
	return toStoreResponse(store), nil
}

// Get obtiene una tienda. Inexistente → domain.ErrStoreNotFound.
func (uc *StoreUseCase) Get(ctx context.Context, id string) (*dto.StoreResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// Update actualiza nombre, documento o estado.
func (uc *StoreUseCase) Update(ctx context.Context, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		s.Name = name
	}
	if in.Document != nil {
		s.Document = strings.TrimSpace(*in.Document)
	}
	if in.Status != nil {
		if *in.Status != storeActive && *in.Status != storeInactive {
			return nil, domain.ErrInvalidInput
		}
		s.Status = *in.Status
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// ListForUser lista las tiendas visibles: todas si algún rol global permite LIST_ALL_STORES,
// si no solo aquellas donde el usuario tiene asignación.
func (uc *StoreUseCase) ListForUser(ctx context.Context, userID string, globalRoles []string, limit, offset int) ([]dto.StoreResponse, error) {
	var (
		list []*entity.Store
		err  error
	)
	if canListAll(globalRoles) {
		list, err = uc.repo.List(ctx, limit, offset)
	} else {
		list, err = uc.repo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

func canListAll(roles []string) bool {
	for _, r := range roles {
		if permission.GlobalRoleAllows(r, permission.ActionListStores) {
			return true
		}
	}
	return false
}

func (uc *StoreUseCase) get(ctx context.Context, id string) (*entity.Store, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrStoreNotFound
	}
	return s, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		OwnerID:   s.OwnerID,
		Document:  s.Document,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
