package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

// GetUser retorna informações do usuário por ID
func GetUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		if userClaims.UserID != id && !userClaims.HasPermission(domain.PermissionUsersManage) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para ver este usuário", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

// CreateUser cria um novo usuário
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateUser")

		var user *domain.User
		if !decodeBody(w, r, &user) {
			return
		}
		if user == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição vazio", nil)
			return
		}

		// Validar campos obrigatórios
		if user.Name == "" || user.Login == "" || user.Email == "" || user.PasswordHash == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome, login, email e senha são obrigatórios", nil)
			return
		}

		created, err := service.CreateUser(r.Context(), user)
		if err != nil {
			if errors.Is(err, authenticating.ErrUserAlreadyExists) {
				log.ForContext(r.Context()).WithError(err).Warn("Usuário duplicado")
				apiErrors.WriteError(w, apiErrors.ErrUserAlreadyExists, err.Error(), nil)
				return
			}

			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusCreated, created)
	}
}

// ListUsers lista todos os usuários
func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser(r.Context())
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, users)
	}
}

// UpdateUser atualiza informações do usuário
func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - UpdateUser")

		id, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		// O usuário pode editar apenas o próprio perfil, a menos que gerencie usuários
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}
		canManage := userClaims.HasPermission(domain.PermissionUsersManage)
		if userClaims.UserID != id && !canManage {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para editar este usuário", nil)
			return
		}

		var updateReq domain.UpdateUserRequest
		if !decodeBody(w, r, &updateReq) {
			return
		}
		updateReq.ID = id

		// Acesso, permissões e lojas só mudam por quem gerencia usuários
		restricted := updateReq.RoleID != nil || updateReq.Permissions != nil || updateReq.StoreIDs != nil ||
			updateReq.Active != nil || updateReq.Deleted != nil
		if restricted && !canManage {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem alterar o acesso do usuário", nil)
			return
		}

		if err := service.UpdateUser(r.Context(), &updateReq); err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{
			"message": "Usuário atualizado com sucesso",
		})
	}
}
