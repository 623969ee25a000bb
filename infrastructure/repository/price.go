package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

const (
	priceCellsTable   = "price_cells"
	priceHistoryTable = "price_history"

	// lotes grandes de upsert estouram o limite de parâmetros do postgres
	priceBatchSize = 500
)

type PriceRepository interface {
	ListCells(ctx context.Context, kind domain.EntityKind) ([]*domain.PriceCell, error)
	// ApplyChanges grava as células e o histórico numa única transação: tudo ou nada
	ApplyChanges(ctx context.Context, changes []domain.PriceChange) error
	ListHistory(ctx context.Context, key domain.CellKey, limit int) ([]*domain.PriceHistoryEntry, error)
}

type priceRepository struct {
	conn *postgres.Connection
}

func NewPriceRepository(conn *postgres.Connection) PriceRepository {
	return &priceRepository{
		conn: conn,
	}
}

var priceCellColumns = []string{"kind", "entity_id", "field", "store_id", "cents", "updated_at"}

func scanPriceCell(row rowScanner) (*domain.PriceCell, error) {
	c := &domain.PriceCell{}
	return c, row.Scan(&c.Kind, &c.EntityID, &c.Field, &c.StoreID, &c.Cents, &c.UpdatedAt)
}

func (r *priceRepository) ListCells(ctx context.Context, kind domain.EntityKind) ([]*domain.PriceCell, error) {
	builder := squirrel.Select(priceCellColumns...).From(priceCellsTable)
	if kind != "" {
		builder = builder.Where(squirrel.Eq{"kind": kind})
	}

	cells, err := queryAll(ctx, r.conn, builder, scanPriceCell)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar preços de %s: %w", kind, err)
	}

	return cells, nil
}

func (r *priceRepository) ApplyChanges(ctx context.Context, changes []domain.PriceChange) error {
	if len(changes) == 0 {
		return nil
	}

	now := time.Now().UTC()

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(changes); start += priceBatchSize {
			end := min(start+priceBatchSize, len(changes))
			batch := changes[start:end]

			if err := upsertCells(ctx, tx, cellsFromChanges(batch, now)); err != nil {
				return fmt.Errorf("erro ao gravar preços: %w", err)
			}

			if err := insertHistory(ctx, tx, batch, now); err != nil {
				return fmt.Errorf("erro ao gravar histórico de preços: %w", err)
			}
		}

		return nil
	})
}

func cellsFromChanges(changes []domain.PriceChange, now time.Time) []*domain.PriceCell {
	cells := make([]*domain.PriceCell, 0, len(changes))
	for _, change := range changes {
		cells = append(cells, &domain.PriceCell{CellKey: change.CellKey, Cents: change.After, UpdatedAt: now})
	}
	return cells
}

func upsertCells(ctx context.Context, q postgres.Queryer, cells []*domain.PriceCell) error {
	if len(cells) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(priceCellsTable).
		Columns(priceCellColumns...).
		Suffix("ON CONFLICT (kind, entity_id, field, store_id) DO UPDATE SET cents = EXCLUDED.cents, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, cell := range cells {
		builder = builder.Values(cell.Kind, cell.EntityID, cell.Field, cell.StoreID, cell.Cents, cell.UpdatedAt)
	}

	return execBuilder(ctx, q, builder)
}

func insertHistory(ctx context.Context, q postgres.Queryer, changes []domain.PriceChange, now time.Time) error {
	builder := squirrel.
		Insert(priceHistoryTable).
		Columns("id", "kind", "entity_id", "field", "store_id", "old_cents", "new_cents", "operation", "magnitude", "user_id", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, c := range changes {
		var userID sql.NullInt64
		if c.UserID != 0 {
			userID = sql.NullInt64{Int64: int64(c.UserID), Valid: true}
		}
		builder = builder.Values(uuid.New().String(), c.Kind, c.EntityID, c.Field, c.StoreID, c.Before, c.After, c.Operation, c.Magnitude, userID, now)
	}

	return execBuilder(ctx, q, builder)
}

func (r *priceRepository) ListHistory(ctx context.Context, key domain.CellKey, limit int) ([]*domain.PriceHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	builder := squirrel.
		Select("id", "kind", "entity_id", "field", "store_id", "old_cents", "new_cents", "operation", "magnitude", "COALESCE(user_id, 0)", "created_at").
		From(priceHistoryTable).
		Where(squirrel.Eq{
			"kind":      key.Kind,
			"entity_id": key.EntityID,
			"field":     key.Field,
			"store_id":  key.StoreID,
		}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	return queryAll(ctx, r.conn, builder, func(row rowScanner) (*domain.PriceHistoryEntry, error) {
		e := &domain.PriceHistoryEntry{}
		return e, row.Scan(&e.ID, &e.Kind, &e.EntityID, &e.Field, &e.StoreID, &e.OldCents, &e.NewCents, &e.Operation, &e.Magnitude, &e.UserID, &e.CreatedAt)
	})
}
