package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

type fakeValidator map[string]*domain.Claims

func (f fakeValidator) ValidateToken(token string) (*domain.Claims, error) {
	claims, ok := f[token]
	if !ok {
		return nil, errors.New("token desconhecido")
	}
	return claims, nil
}

var validator = fakeValidator{
	"token-admin":    {UserID: 1, UserRoleID: domain.RoleAdmin},
	"token-operador": {UserID: 7, UserRoleID: domain.RoleOperator, UserPermissions: []domain.Permission{domain.PermissionPricesWrite}},
}

func claimsEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if ok {
			w.Header().Set("X-User", string(rune('0'+claims.UserID)))
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	log.SetupTestLogger()
	handler := AuthMiddleware(validator)(claimsEcho())

	tests := []struct {
		name       string
		method     string
		target     string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "Rota pública sem token", method: http.MethodPost, target: "/v1/login", wantStatus: http.StatusOK},
		{name: "Preflight sem token", method: http.MethodOptions, target: "/v1/stores", wantStatus: http.StatusOK},
		{name: "Sem token", method: http.MethodGet, target: "/v1/stores", wantStatus: http.StatusUnauthorized},
		{name: "Token inválido", method: http.MethodGet, target: "/v1/stores", header: "Bearer xyz", wantStatus: http.StatusUnauthorized},
		{name: "Cabeçalho sem Bearer", method: http.MethodGet, target: "/v1/stores", header: "token-admin", wantStatus: http.StatusUnauthorized},
		{name: "Token válido", method: http.MethodGet, target: "/v1/stores", header: "Bearer token-admin", wantStatus: http.StatusOK, wantUser: "1"},
		{name: "Token por query no stream de eventos", method: http.MethodGet, target: "/v1/me/preferences/events?access_token=token-operador", wantStatus: http.StatusOK, wantUser: "7"},
		{name: "Token por query fora do stream", method: http.MethodGet, target: "/v1/stores?access_token=token-admin", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}

func TestRequirePermission(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name       string
		token      string
		permission domain.Permission
		wantStatus int
	}{
		{name: "Administrador tem todas as permissões", token: "token-admin", permission: domain.PermissionUsersManage, wantStatus: http.StatusOK},
		{name: "Operador com a permissão", token: "token-operador", permission: domain.PermissionPricesWrite, wantStatus: http.StatusOK},
		{name: "Operador sem a permissão", token: "token-operador", permission: domain.PermissionPricesBulk, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthMiddleware(validator)(AllRoles()(RequirePermission(tt.permission)(claimsEcho())))
			req := httptest.NewRequest(http.MethodPut, "/v1/prices", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAdminOnly_RecusaGerente(t *testing.T) {
	log.SetupTestLogger()
	v := fakeValidator{"token-gerente": {UserID: 3, UserRoleID: domain.RoleManager}}

	handler := AuthMiddleware(v)(AdminOnly()(claimsEcho()))
	req := httptest.NewRequest(http.MethodPost, "/v1/cron/jobs/all/run", nil)
	req.Header.Set("Authorization", "Bearer token-gerente")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoggingMiddleware(t *testing.T) {
	log.SetupTestLogger()

	var seenUser int
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, ok := log.RequestInfoFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, "aba-1", info.ClientID)
		seenUser = info.UserID()
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware()(AuthMiddleware(validator)(inner))
	req := httptest.NewRequest(http.MethodGet, "/v1/stores", nil)
	req.Header.Set("Authorization", "Bearer token-operador")
	req.Header.Set(ClientIDHeader, "aba-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
	assert.Equal(t, 7, seenUser, "o usuário autenticado fica visível para o log da requisição")
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	})
	handler := LogPanicMiddleware()(LoggingMiddleware()(boom))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stores", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
	assert.Contains(t, rec.Body.String(), rec.Header().Get(CorrelationIDHeader))
}
