package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

const storesTable = "stores"

type StoreRepository interface {
	ListStores(ctx context.Context) ([]*domain.Store, error)
	GetStore(ctx context.Context, id string) (*domain.Store, error)
	CreateStore(ctx context.Context, store *domain.Store) error
	UpdateStore(ctx context.Context, store *domain.Store) error
}

type storeRepository struct {
	conn *postgres.Connection
}

func NewStoreRepository(conn *postgres.Connection) StoreRepository {
	return &storeRepository{
		conn: conn,
	}
}

var storeColumns = []string{"id", "name", "active", "created_at", "updated_at"}

func (r *storeRepository) ListStores(ctx context.Context) ([]*domain.Store, error) {
	return listStores(ctx, r.conn)
}

func listStores(ctx context.Context, q postgres.Queryer) ([]*domain.Store, error) {
	query, args, err := squirrel.
		Select(storeColumns...).
		From(storesTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar lojas: %w", err)
	}
	defer rows.Close()

	stores := make([]*domain.Store, 0)
	for rows.Next() {
		store := &domain.Store{}
		if err := rows.Scan(&store.ID, &store.Name, &store.Active, &store.CreatedAt, &store.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao processar loja: %w", err)
		}
		stores = append(stores, store)
	}

	return stores, rows.Err()
}

func (r *storeRepository) GetStore(ctx context.Context, id string) (*domain.Store, error) {
	query, args, err := squirrel.
		Select(storeColumns...).
		From(storesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	store := &domain.Store{}
	err = r.conn.QueryRowContext(ctx, query, args...).
		Scan(&store.ID, &store.Name, &store.Active, &store.CreatedAt, &store.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar loja %s: %w", id, err)
	}

	return store, nil
}

func (r *storeRepository) CreateStore(ctx context.Context, store *domain.Store) error {
	return insertStores(ctx, r.conn, []*domain.Store{store})
}

func insertStores(ctx context.Context, q postgres.Queryer, stores []*domain.Store) error {
	if len(stores) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(storesTable).
		Columns(storeColumns...).
		PlaceholderFormat(squirrel.Dollar)
	for _, store := range stores {
		builder = builder.Values(store.ID, store.Name, store.Active, store.CreatedAt, store.UpdatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir lojas: %w", err)
	}

	return nil
}

func (r *storeRepository) UpdateStore(ctx context.Context, store *domain.Store) error {
	query, args, err := squirrel.
		Update(storesTable).
		Set("name", store.Name).
		Set("active", store.Active).
		Set("updated_at", store.UpdatedAt).
		Where(squirrel.Eq{"id": store.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar loja %s: %w", store.ID, err)
	}

	return nil
}
