package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

// BackupRepository lê e substitui o catálogo inteiro. Usuários só são lidos: a exportação
// não carrega senhas, então restaurar a tabela apagaria as credenciais.
type BackupRepository interface {
	Snapshot(ctx context.Context) (*domain.BackupData, error)
	Restore(ctx context.Context, data *domain.BackupData) error
}

type backupRepository struct {
	conn *postgres.Connection
}

func NewBackupRepository(conn *postgres.Connection) BackupRepository {
	return &backupRepository{
		conn: conn,
	}
}

// restoreOrder respeita as dependências entre tabelas ao apagar
var restoreOrder = []string{
	priceHistoryTable,
	priceCellsTable,
	cardMachinesTable,
	damageTypesTable,
	tradeInDevicesTable,
	phoneModelsTable,
	subcategoriesTable,
	categoriesTable,
	storesTable,
}

func (r *backupRepository) Snapshot(ctx context.Context) (*domain.BackupData, error) {
	data := &domain.BackupData{}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		var err error

		if data.Stores, err = listStores(ctx, tx); err != nil {
			return err
		}
		if data.Categories, err = listCategories(ctx, tx); err != nil {
			return err
		}
		if data.Subcategories, err = listSubcategories(ctx, tx); err != nil {
			return err
		}
		if data.Models, err = listPhoneModels(ctx, tx); err != nil {
			return err
		}
		if data.TradeInDevices, err = listTradeInDevices(ctx, tx); err != nil {
			return err
		}
		if data.DamageTypes, err = listDamageTypes(ctx, tx); err != nil {
			return err
		}
		if data.CardMachines, err = listCardMachines(ctx, tx); err != nil {
			return err
		}
		if data.Users, err = listUsers(ctx, tx); err != nil {
			return err
		}
		data.PriceCells, err = queryAll(ctx, tx, squirrel.Select(priceCellColumns...).From(priceCellsTable), scanPriceCell)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar snapshot: %w", err)
	}

	return data, nil
}

func (r *backupRepository) Restore(ctx context.Context, data *domain.BackupData) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, table := range restoreOrder {
			if err := execBuilder(ctx, tx, squirrel.Delete(table)); err != nil {
				return fmt.Errorf("erro ao limpar %s: %w", table, err)
			}
		}

		steps := []struct {
			table string
			fn    func() error
		}{
			{storesTable, func() error { return insertStores(ctx, tx, data.Stores) }},
			{categoriesTable, func() error { return insertCategories(ctx, tx, data.Categories) }},
			{subcategoriesTable, func() error { return insertSubcategories(ctx, tx, data.Subcategories) }},
			{phoneModelsTable, func() error { return insertPhoneModels(ctx, tx, data.Models) }},
			{tradeInDevicesTable, func() error { return insertTradeInDevices(ctx, tx, data.TradeInDevices) }},
			{damageTypesTable, func() error { return insertDamageTypes(ctx, tx, data.DamageTypes) }},
			{cardMachinesTable, func() error { return insertCardMachines(ctx, tx, data.CardMachines) }},
			{priceCellsTable, func() error { return restoreCells(ctx, tx, data.PriceCells) }},
		}

		for _, step := range steps {
			if err := step.fn(); err != nil {
				return fmt.Errorf("erro ao restaurar %s: %w", step.table, err)
			}
		}

		return nil
	})
}

func restoreCells(ctx context.Context, q postgres.Queryer, cells []*domain.PriceCell) error {
	for start := 0; start < len(cells); start += priceBatchSize {
		end := min(start+priceBatchSize, len(cells))
		if err := upsertCells(ctx, q, cells[start:end]); err != nil {
			return err
		}
	}
	return nil
}
