package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/memory"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/phone-retail-admin-api/internal/config"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
)

const adminPassword = "Senha@Forte1"

func testConfig() *config.Config {
	return &config.Config{
		SecretKey: "segredo-de-teste",
		Auth:      config.Auth{TokenTTL: time.Hour},
	}
}

func newSeededService(t *testing.T) *Service {
	t.Helper()

	store, err := memory.NewSeeded(adminPassword, true)
	require.NoError(t, err)
	return NewService(store, store, testConfig())
}

func TestService_LoginUser(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t)

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{name: "Login por nome de usuário", login: "admin", password: adminPassword},
		{name: "Login por email com espaços e maiúsculas", login: " Admin@Loja.local ", password: adminPassword},
		{name: "Senha incorreta", login: "admin", password: "errada", wantErr: ErrInvalidCredentials},
		{name: "Usuário inexistente", login: "fulano", password: adminPassword, wantErr: ErrUserNotFound},
		{name: "Campos vazios", login: "", password: "", wantErr: ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.LoginUser(ctx, tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 1, claims.UserID)
			assert.Equal(t, domain.RoleAdmin, claims.UserRoleID)
			assert.ElementsMatch(t, domain.AllPermissions, claims.UserPermissions)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := newSeededService(t)

	_, err := service.ValidateToken("nao.e.um.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := service.LoginUser(context.Background(), "admin", adminPassword)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, apiErrors.ErrExpiredToken, authErr.APICode())
}

func TestService_CreateUser(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t)

	created, err := service.CreateUser(ctx, &domain.User{
		Name:         "Maria",
		Lastname:     "Souza",
		Login:        " Maria.Souza ",
		Email:        "maria@loja.local",
		PasswordHash: "Trocar@123",
		Permissions:  []domain.Permission{domain.PermissionPricesBulk},
		StoreIDs:     []string{"lj0001", "lj0001"},
	})
	require.NoError(t, err)
	assert.Equal(t, "maria.souza", created.Login)
	assert.Equal(t, domain.RoleOperator, created.RoleID)
	assert.False(t, created.Active, "usuário novo nasce inativo")
	assert.Empty(t, created.PasswordHash)
	assert.Equal(t, []string{"lj0001"}, created.StoreIDs)

	_, err = service.LoginUser(ctx, "maria.souza", "Trocar@123")
	assert.ErrorIs(t, err, ErrUserDisabled)

	require.NoError(t, service.UpdateUser(ctx, &domain.UpdateUserRequest{ID: created.ID, Active: boolPtr(true)}))

	token, err := service.LoginUser(ctx, "maria@loja.local", "Trocar@123")
	require.NoError(t, err)
	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasPermission(domain.PermissionPricesBulk))
	assert.False(t, claims.HasPermission(domain.PermissionUsersManage))
	assert.True(t, claims.CanAccessStore("lj0001"))
	assert.False(t, claims.CanAccessStore("lj0002"))

	tests := []struct {
		name    string
		user    domain.User
		wantErr error
		code    string
	}{
		{
			name:    "Login duplicado",
			user:    domain.User{Name: "A", Login: "ADMIN", Email: "outro@loja.local", PasswordHash: "Trocar@123"},
			wantErr: ErrUserAlreadyExists,
			code:    apiErrors.ErrUserAlreadyExists,
		},
		{
			name:    "Email duplicado",
			user:    domain.User{Name: "A", Login: "outro", Email: "MARIA@loja.local", PasswordHash: "Trocar@123"},
			wantErr: ErrUserAlreadyExists,
			code:    apiErrors.ErrUserAlreadyExists,
		},
		{
			name:    "Senha fraca",
			user:    domain.User{Name: "A", Login: "outro", Email: "outro@loja.local", PasswordHash: "123"},
			wantErr: ErrWeakPassword,
			code:    apiErrors.ErrInvalidRequest,
		},
		{
			name:    "Permissão desconhecida",
			user:    domain.User{Name: "A", Login: "outro", Email: "outro@loja.local", PasswordHash: "Trocar@123", Permissions: []domain.Permission{"tudo"}},
			wantErr: ErrUnknownPermission,
			code:    apiErrors.ErrInvalidRequest,
		},
		{
			name:    "Loja desconhecida",
			user:    domain.User{Name: "A", Login: "outro", Email: "outro@loja.local", PasswordHash: "Trocar@123", StoreIDs: []string{"lj9999"}},
			wantErr: ErrUnknownStore,
			code:    apiErrors.ErrInvalidRequest,
		},
		{
			name:    "Sem login",
			user:    domain.User{Name: "A", Email: "outro@loja.local", PasswordHash: "Trocar@123"},
			wantErr: ErrMissingRequiredData,
			code:    apiErrors.ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			_, err := service.CreateUser(ctx, &user)
			assert.ErrorIs(t, err, tt.wantErr)

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.code, authErr.APICode())
		})
	}
}

func TestService_UpdateUser_LoginDeOutroUsuario(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t)

	created, err := service.CreateUser(ctx, &domain.User{
		Name: "João", Login: "joao", Email: "joao@loja.local", PasswordHash: "Trocar@123",
	})
	require.NoError(t, err)

	err = service.UpdateUser(ctx, &domain.UpdateUserRequest{ID: created.ID, Login: strPtr("admin")})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// o próprio login não conta como duplicado
	err = service.UpdateUser(ctx, &domain.UpdateUserRequest{ID: created.ID, Login: strPtr("JOAO")})
	assert.NoError(t, err)

	err = service.UpdateUser(ctx, &domain.UpdateUserRequest{ID: 999, Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t)

	assert.ErrorIs(t, service.ChangePassword(ctx, 1, "errada", "Nova@Senha9"), ErrInvalidCredentials)
	assert.ErrorIs(t, service.ChangePassword(ctx, 1, adminPassword, adminPassword), ErrSamePassword)
	assert.ErrorIs(t, service.ChangePassword(ctx, 1, adminPassword, "fraca"), ErrWeakPassword)

	require.NoError(t, service.ChangePassword(ctx, 1, adminPassword, "Nova@Senha9"))

	_, err := service.LoginUser(ctx, "admin", "Nova@Senha9")
	assert.NoError(t, err)
}

func TestService_GenerateStrongPassword(t *testing.T) {
	ctx := context.Background()
	service := newSeededService(t)

	operator, err := service.CreateUser(ctx, &domain.User{
		Name: "Op", Login: "op", Email: "op@loja.local", PasswordHash: "Trocar@123",
	})
	require.NoError(t, err)

	password, err := service.GenerateStrongPassword(ctx, 1, operator.ID)
	require.NoError(t, err)
	assert.Len(t, password, 12)
	assert.NoError(t, service.ValidatePasswordStrength(password))

	_, err = service.GenerateStrongPassword(ctx, operator.ID, 1)
	assert.ErrorIs(t, err, ErrNoAdminPrivileges)
}

func TestGenerateStrongPassword_SempreForte(t *testing.T) {
	service := &Service{}
	for i := 0; i < 50; i++ {
		password, err := generateStrongPassword(8)
		require.NoError(t, err)
		assert.NoError(t, service.ValidatePasswordStrength(password), password)
	}
}

func TestService_ListUser_ErroDeBanco(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	users.EXPECT().ListUser(gomock.Any()).Return(nil, errors.New("conexão recusada"))

	service := NewService(users, mocks.NewMockStoreRepository(ctrl), testConfig())

	_, err := service.ListUser(context.Background())
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, apiErrors.ErrDatabaseOperation, authErr.APICode())
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
