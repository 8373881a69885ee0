package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/pkg/jwt"
)

const secret = "auth-test-secret"

type memUsers struct {
	byID map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }

func newAuth() (*auth.AuthUseCase, *memUsers) {
	repo := &memUsers{byID: map[string]*entity.User{}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "test"}), repo
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ana@Loja.com ", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@loja.com", u.Email)
	assert.Equal(t, []string{entity.RoleUser}, u.Roles)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@loja.com", Password: "segredo123"})
	require.NoError(t, err)
	userID, roles, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, []string{entity.RoleUser}, roles)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordCorto(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Fallos(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "no revela si el email existe")

	repo.byID[u.ID].Status = entity.UserStatusSuspended
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
