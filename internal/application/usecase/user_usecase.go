package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/permission"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo        repository.UserRepository
	invalidator PermissionInvalidator
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia. invalidator puede ser nil.
func NewUserUseCase(repo repository.UserRepository, invalidator PermissionInvalidator) *UserUseCase {
	return &UserUseCase{repo: repo, invalidator: invalidator}
}

// GetByID obtiene un usuario por ID. Inexistente → domain.ErrUserNotFound.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return EntityToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *EntityToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// UpdateRoles reemplaza los roles globales del usuario. Invalida el snapshot de permisos.
func (uc *UserUseCase) UpdateRoles(ctx context.Context, id string, roles []string) (*dto.UserResponse, error) {
	if len(roles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := map[string]struct{}{}
	clean := make([]string, 0, len(roles))
	for _, r := range roles {
		if !permission.IsGlobalRole(r) {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		clean = append(clean, r)
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Roles = clean
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if uc.invalidator != nil {
		uc.invalidator.InvalidateUser(ctx, user.ID)
	}
	return EntityToUserResponse(user), nil
}

// UpdateStatus cambia el estado (active, inactive, suspended). Solo usuarios activos hacen login.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.UserResponse, error) {
	switch status {
	case entity.UserStatusActive, entity.UserStatusInactive, entity.UserStatusSuspended:
	default:
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	// El snapshot cacheado lleva el estado; sin invalidar, una suspensión esperaría al TTL.
	if uc.invalidator != nil {
		uc.invalidator.InvalidateUser(ctx, user.ID)
	}
	return EntityToUserResponse(user), nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// EntityToUserResponse mapea la entidad a la salida pública (sin hash).
func EntityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     roles,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
