package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

const usersTable = "users"

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	ListUser(ctx context.Context) ([]*domain.User, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

var userColumns = []string{
	"id", "name", "lastname", "login", "email", "password_hash", "active", "role_id",
	"permissions", "store_ids", "deleted", "deleted_at", "created_at", "updated_at",
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user        domain.User
		permissions []string
		storeIDs    []string
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Login,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		pq.Array(&permissions),
		pq.Array(&storeIDs),
		&user.Deleted,
		&user.DeletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Permissions = toPermissions(permissions)
	user.StoreIDs = storeIDs
	if user.StoreIDs == nil {
		user.StoreIDs = []string{}
	}

	return &user, nil
}

func toPermissions(values []string) []domain.Permission {
	permissions := make([]domain.Permission, 0, len(values))
	for _, v := range values {
		permissions = append(permissions, domain.Permission(v))
	}
	return permissions
}

func fromPermissions(permissions []domain.Permission) []string {
	values := make([]string, 0, len(permissions))
	for _, p := range permissions {
		values = append(values, string(p))
	}
	return values
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("name", "lastname", "login", "email", "password_hash", "active", "role_id", "permissions", "store_ids").
		Values(user.Name, user.Lastname, user.Login, user.Email, user.PasswordHash, user.Active, user.RoleID,
			pq.Array(fromPermissions(user.Permissions)), pq.Array(user.StoreIDs)).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	builder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Set("permissions", pq.Array(fromPermissions(user.Permissions))).
		Set("store_ids", pq.Array(user.StoreIDs)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		builder = builder.Set("name", user.Name)
	}

	if user.Lastname != "" {
		builder = builder.Set("lastname", user.Lastname)
	}

	if user.Login != "" {
		builder = builder.Set("login", user.Login)
	}

	if user.Email != "" {
		builder = builder.Set("email", user.Email)
	}

	if user.PasswordHash != "" {
		builder = builder.Set("password_hash", user.PasswordHash)
	}

	if user.RoleID != 0 {
		builder = builder.Set("role_id", user.RoleID)
	}

	if user.Deleted {
		builder = builder.Set("deleted", true)
		builder = builder.Set("deleted_at", user.DeletedAt)
	}

	if err := execBuilder(ctx, r.conn, builder.PlaceholderFormat(squirrel.Dollar)); err != nil {
		return fmt.Errorf("erro ao atualizar usuário %d: %w", user.ID, err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email, "deleted": false})
}

func (r *userRepository) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"login": login, "deleted": false})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID, "deleted": false})
}

func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	return queryOne(ctx, r.conn, squirrel.Select(userColumns...).From(usersTable).Where(where), scanUser)
}

func (r *userRepository) ListUser(ctx context.Context) ([]*domain.User, error) {
	return listUsers(ctx, r.conn)
}

func listUsers(ctx context.Context, q postgres.Queryer) ([]*domain.User, error) {
	return queryAll(ctx, q, squirrel.Select(userColumns...).From(usersTable).Where(squirrel.Eq{"deleted": false}).OrderBy("name ASC"), scanUser)
}
