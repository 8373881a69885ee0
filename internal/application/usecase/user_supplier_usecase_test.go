package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

func TestUserUpdateRoles_InvalidaPermisos(t *testing.T) {
	users := &memUsers{byID: map[string]*entity.User{"u1": {ID: "u1", Roles: []string{entity.RoleUser}}}}
	inv := &recordingInvalidator{}
	uc := usecase.NewUserUseCase(users, inv)

	out, err := uc.UpdateRoles(context.Background(), "u1", []string{entity.RoleAdmin, entity.RoleAdmin, entity.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin, entity.RoleUser}, out.Roles)
	assert.Equal(t, []string{"u1"}, inv.users)

	_, err = uc.UpdateRoles(context.Background(), "u1", []string{"ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateRoles(context.Background(), "ghost", []string{entity.RoleUser})
	assert.EqualError(t, err, "User not found")
}

func TestUserUpdateStatus(t *testing.T) {
	users := &memUsers{byID: map[string]*entity.User{"u1": {ID: "u1", Status: entity.UserStatusActive}}}
	inv := &recordingInvalidator{}
	uc := usecase.NewUserUseCase(users, inv)

	out, err := uc.UpdateStatus(context.Background(), "u1", entity.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusSuspended, out.Status)
	assert.Equal(t, []string{"u1"}, inv.users, "la suspensión invalida el snapshot de permisos")

	_, err = uc.UpdateStatus(context.Background(), "u1", "deleted")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplier_CRUD(t *testing.T) {
	uc := usecase.NewSupplierUseCase(newMemSuppliers())
	ctx := context.Background()

	s, err := uc.Create(ctx, store1, dto.SupplierRequest{Name: "Laticínios São João", Email: "vendas@sj.com"})
	require.NoError(t, err)
	assert.Equal(t, "active", s.Status)

	_, err = uc.Create(ctx, store1, dto.SupplierRequest{Name: "laticinios sao joao"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, "store-2", dto.SupplierRequest{Name: "Laticínios São João"})
	assert.NoError(t, err, "otra tienda puede repetir el nombre")

	up, err := uc.Update(ctx, store1, s.ID, dto.SupplierRequest{Name: "Laticínios SJ", Phone: "11 9999"})
	require.NoError(t, err)
	assert.Equal(t, "11 9999", up.Phone)

	require.NoError(t, uc.Deactivate(ctx, store1, s.ID))
	got, err := uc.Get(ctx, store1, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", got.Status)

	_, err = uc.Get(ctx, "store-2", s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, store1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
