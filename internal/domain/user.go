package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin    = 1
	RoleManager  = 2
	RoleOperator = 3
)

type Permission string

const (
	PermissionCatalogWrite Permission = "catalog:write"
	PermissionPricesWrite  Permission = "prices:write"
	PermissionPricesBulk   Permission = "prices:bulk"
	PermissionUsersManage  Permission = "users:manage"
	PermissionBackupManage Permission = "backup:manage"
	PermissionStoresManage Permission = "stores:manage"
)

// AllPermissions lista as permissões conhecidas, na ordem exibida no cadastro de usuários
var AllPermissions = []Permission{
	PermissionCatalogWrite,
	PermissionPricesWrite,
	PermissionPricesBulk,
	PermissionUsersManage,
	PermissionBackupManage,
	PermissionStoresManage,
}

func IsKnownPermission(p Permission) bool {
	for _, known := range AllPermissions {
		if known == p {
			return true
		}
	}
	return false
}

type User struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Lastname     string       `json:"lastname"`
	Login        string       `json:"login"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"password,omitempty"`
	Active       bool         `json:"active"`
	RoleID       int          `json:"role_id"`
	Permissions  []Permission `json:"permissions"`
	StoreIDs     []string     `json:"store_ids"`
	Deleted      bool         `json:"deleted"`
	DeletedAt    *time.Time   `json:"deleted_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// HasPermission considera o administrador detentor de todas as permissões
func (u *User) HasPermission(p Permission) bool {
	if u.RoleID == RoleAdmin {
		return true
	}
	for _, granted := range u.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

type UpdateUserRequest struct {
	ID          int           `json:"id"`
	Name        *string       `json:"name"`
	Lastname    *string       `json:"lastname"`
	Login       *string       `json:"login"`
	Email       *string       `json:"email"`
	Active      *bool         `json:"active"`
	RoleID      *int          `json:"role_id"`
	Permissions *[]Permission `json:"permissions"`
	StoreIDs    *[]string     `json:"store_ids"`
	Deleted     *bool         `json:"deleted"`
}

type Claims struct {
	UserID          int
	UserName        string
	UserLogin       string
	UserEmail       string
	UserActive      bool
	UserRoleID      int
	UserPermissions []Permission
	UserStoreIDs    []string
	jwt.RegisteredClaims
}

func (c *Claims) HasPermission(p Permission) bool {
	if c.UserRoleID == RoleAdmin {
		return true
	}
	for _, granted := range c.UserPermissions {
		if granted == p {
			return true
		}
	}
	return false
}

// CanAccessStore indica se o usuário pode operar preços da loja. Lista vazia libera todas.
func (c *Claims) CanAccessStore(storeID string) bool {
	if c.UserRoleID == RoleAdmin || len(c.UserStoreIDs) == 0 {
		return true
	}
	for _, id := range c.UserStoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}
