package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	categoriesTable     = "categories"
	subcategoriesTable  = "subcategories"
	phoneModelsTable    = "phone_models"
	tradeInDevicesTable = "trade_in_devices"
	damageTypesTable    = "damage_types"
	cardMachinesTable   = "card_machines"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error

	ListSubcategories(ctx context.Context) ([]*domain.Subcategory, error)
	GetSubcategory(ctx context.Context, id string) (*domain.Subcategory, error)
	CreateSubcategory(ctx context.Context, subcategory *domain.Subcategory) error

	ListPhoneModels(ctx context.Context) ([]*domain.PhoneModel, error)
	GetPhoneModel(ctx context.Context, id string) (*domain.PhoneModel, error)
	CreatePhoneModel(ctx context.Context, model *domain.PhoneModel) error
	UpdatePhoneModel(ctx context.Context, model *domain.PhoneModel) error

	ListTradeInDevices(ctx context.Context) ([]*domain.TradeInDevice, error)
	GetTradeInDevice(ctx context.Context, id string) (*domain.TradeInDevice, error)
	CreateTradeInDevice(ctx context.Context, device *domain.TradeInDevice) error
	UpdateTradeInDevice(ctx context.Context, device *domain.TradeInDevice) error

	ListDamageTypes(ctx context.Context) ([]*domain.DamageType, error)
	GetDamageType(ctx context.Context, id string) (*domain.DamageType, error)
	CreateDamageType(ctx context.Context, damageType *domain.DamageType) error

	ListCardMachines(ctx context.Context) ([]*domain.CardMachine, error)
	GetCardMachine(ctx context.Context, id string) (*domain.CardMachine, error)
	CreateCardMachine(ctx context.Context, machine *domain.CardMachine) error
	UpdateCardMachine(ctx context.Context, machine *domain.CardMachine) error
}

type catalogRepository struct {
	conn *postgres.Connection
}

func NewCatalogRepository(conn *postgres.Connection) CatalogRepository {
	return &catalogRepository{
		conn: conn,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// queryAll executa a consulta e aplica scan em cada linha
func queryAll[T any](ctx context.Context, q postgres.Queryer, builder squirrel.SelectBuilder, scan func(rowScanner) (T, error)) ([]T, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// queryOne devolve o zero de T, sem erro, quando não há linha
func queryOne[T any](ctx context.Context, q postgres.Queryer, builder squirrel.SelectBuilder, scan func(rowScanner) (T, error)) (T, error) {
	var zero T

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return zero, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	item, err := scan(q.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return zero, nil
	}
	if err != nil {
		return zero, err
	}

	return item, nil
}

func execBuilder(ctx context.Context, q postgres.Queryer, builder squirrel.Sqlizer) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir comando: %w", err)
	}

	_, err = q.ExecContext(ctx, query, args...)
	return err
}

// Categorias

func scanCategory(row rowScanner) (*domain.Category, error) {
	c := &domain.Category{}
	return c, row.Scan(&c.ID, &c.Name, &c.CreatedAt)
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return listCategories(ctx, r.conn)
}

func listCategories(ctx context.Context, q postgres.Queryer) ([]*domain.Category, error) {
	return queryAll(ctx, q, squirrel.Select("id", "name", "created_at").From(categoriesTable).OrderBy("name ASC"), scanCategory)
}

func (r *catalogRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return queryOne(ctx, r.conn, squirrel.Select("id", "name", "created_at").From(categoriesTable).Where(squirrel.Eq{"id": id}), scanCategory)
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return insertCategories(ctx, r.conn, []*domain.Category{category})
}

func insertCategories(ctx context.Context, q postgres.Queryer, categories []*domain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	builder := squirrel.Insert(categoriesTable).Columns("id", "name", "created_at").PlaceholderFormat(squirrel.Dollar)
	for _, c := range categories {
		builder = builder.Values(c.ID, c.Name, c.CreatedAt)
	}
	return execBuilder(ctx, q, builder)
}

// Subcategorias

func scanSubcategory(row rowScanner) (*domain.Subcategory, error) {
	s := &domain.Subcategory{}
	return s, row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt)
}

var subcategoryColumns = []string{"id", "category_id", "name", "created_at"}

func (r *catalogRepository) ListSubcategories(ctx context.Context) ([]*domain.Subcategory, error) {
	return listSubcategories(ctx, r.conn)
}

func listSubcategories(ctx context.Context, q postgres.Queryer) ([]*domain.Subcategory, error) {
	return queryAll(ctx, q, squirrel.Select(subcategoryColumns...).From(subcategoriesTable).OrderBy("name ASC"), scanSubcategory)
}

func (r *catalogRepository) GetSubcategory(ctx context.Context, id string) (*domain.Subcategory, error) {
	return queryOne(ctx, r.conn, squirrel.Select(subcategoryColumns...).From(subcategoriesTable).Where(squirrel.Eq{"id": id}), scanSubcategory)
}

func (r *catalogRepository) CreateSubcategory(ctx context.Context, subcategory *domain.Subcategory) error {
	return insertSubcategories(ctx, r.conn, []*domain.Subcategory{subcategory})
}

func insertSubcategories(ctx context.Context, q postgres.Queryer, subcategories []*domain.Subcategory) error {
	if len(subcategories) == 0 {
		return nil
	}
	builder := squirrel.Insert(subcategoriesTable).Columns(subcategoryColumns...).PlaceholderFormat(squirrel.Dollar)
	for _, s := range subcategories {
		builder = builder.Values(s.ID, s.CategoryID, s.Name, s.CreatedAt)
	}
	return execBuilder(ctx, q, builder)
}

// Modelos

var phoneModelColumns = []string{"id", "name", "brand", "storage", "category_id", "subcategory_id", "active", "created_at", "updated_at"}

func scanPhoneModel(row rowScanner) (*domain.PhoneModel, error) {
	m := &domain.PhoneModel{}
	return m, row.Scan(&m.ID, &m.Name, &m.Brand, &m.Storage, &m.CategoryID, &m.SubcategoryID, &m.Active, &m.CreatedAt, &m.UpdatedAt)
}

func (r *catalogRepository) ListPhoneModels(ctx context.Context) ([]*domain.PhoneModel, error) {
	return listPhoneModels(ctx, r.conn)
}

func listPhoneModels(ctx context.Context, q postgres.Queryer) ([]*domain.PhoneModel, error) {
	return queryAll(ctx, q, squirrel.Select(phoneModelColumns...).From(phoneModelsTable).OrderBy("brand ASC", "name ASC"), scanPhoneModel)
}

func (r *catalogRepository) GetPhoneModel(ctx context.Context, id string) (*domain.PhoneModel, error) {
	return queryOne(ctx, r.conn, squirrel.Select(phoneModelColumns...).From(phoneModelsTable).Where(squirrel.Eq{"id": id}), scanPhoneModel)
}

func (r *catalogRepository) CreatePhoneModel(ctx context.Context, model *domain.PhoneModel) error {
	return insertPhoneModels(ctx, r.conn, []*domain.PhoneModel{model})
}

func insertPhoneModels(ctx context.Context, q postgres.Queryer, models []*domain.PhoneModel) error {
	if len(models) == 0 {
		return nil
	}
	builder := squirrel.Insert(phoneModelsTable).Columns(phoneModelColumns...).PlaceholderFormat(squirrel.Dollar)
	for _, m := range models {
		builder = builder.Values(m.ID, m.Name, m.Brand, m.Storage, m.CategoryID, m.SubcategoryID, m.Active, m.CreatedAt, m.UpdatedAt)
	}
	return execBuilder(ctx, q, builder)
}

func (r *catalogRepository) UpdatePhoneModel(ctx context.Context, m *domain.PhoneModel) error {
	builder := squirrel.
		Update(phoneModelsTable).
		Set("name", m.Name).
		Set("brand", m.Brand).
		Set("storage", m.Storage).
		Set("category_id", m.CategoryID).
		Set("subcategory_id", m.SubcategoryID).
		Set("active", m.Active).
		Set("updated_at", m.UpdatedAt).
		Where(squirrel.Eq{"id": m.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if err := execBuilder(ctx, r.conn, builder); err != nil {
		return fmt.Errorf("erro ao atualizar modelo %s: %w", m.ID, err)
	}
	return nil
}

// Aparelhos de troca

var tradeInColumns = []string{"id", "model_id", "name", "subcategory_id", "active", "created_at", "updated_at"}

func scanTradeInDevice(row rowScanner) (*domain.TradeInDevice, error) {
	d := &domain.TradeInDevice{}
	return d, row.Scan(&d.ID, &d.ModelID, &d.Name, &d.SubcategoryID, &d.Active, &d.CreatedAt, &d.UpdatedAt)
}

func (r *catalogRepository) ListTradeInDevices(ctx context.Context) ([]*domain.TradeInDevice, error) {
	return listTradeInDevices(ctx, r.conn)
}

func listTradeInDevices(ctx context.Context, q postgres.Queryer) ([]*domain.TradeInDevice, error) {
	return queryAll(ctx, q, squirrel.Select(tradeInColumns...).From(tradeInDevicesTable).OrderBy("name ASC"), scanTradeInDevice)
}

func (r *catalogRepository) GetTradeInDevice(ctx context.Context, id string) (*domain.TradeInDevice, error) {
	return queryOne(ctx, r.conn, squirrel.Select(tradeInColumns...).From(tradeInDevicesTable).Where(squirrel.Eq{"id": id}), scanTradeInDevice)
}

func (r *catalogRepository) CreateTradeInDevice(ctx context.Context, device *domain.TradeInDevice) error {
	return insertTradeInDevices(ctx, r.conn, []*domain.TradeInDevice{device})
}

func insertTradeInDevices(ctx context.Context, q postgres.Queryer, devices []*domain.TradeInDevice) error {
	if len(devices) == 0 {
		return nil
	}
	builder := squirrel.Insert(tradeInDevicesTable).Columns(tradeInColumns...).PlaceholderFormat(squirrel.Dollar)
	for _, d := range devices {
		builder = builder.Values(d.ID, d.ModelID, d.Name, d.SubcategoryID, d.Active, d.CreatedAt, d.UpdatedAt)
	}
	return execBuilder(ctx, q, builder)
}

func (r *catalogRepository) UpdateTradeInDevice(ctx context.Context, d *domain.TradeInDevice) error {
	builder := squirrel.
		Update(tradeInDevicesTable).
		Set("name", d.Name).
		Set("subcategory_id", d.SubcategoryID).
		Set("active", d.Active).
		Set("updated_at", d.UpdatedAt).
		Where(squirrel.Eq{"id": d.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if err := execBuilder(ctx, r.conn, builder); err != nil {
		return fmt.Errorf("erro ao atualizar aparelho de troca %s: %w", d.ID, err)
	}
	return nil
}

// Tipos de avaria

var damageTypeColumns = []string{"id", "name", "description", "created_at"}

func scanDamageType(row rowScanner) (*domain.DamageType, error) {
	d := &domain.DamageType{}
	return d, row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
}

func (r *catalogRepository) ListDamageTypes(ctx context.Context) ([]*domain.DamageType, error) {
	return listDamageTypes(ctx, r.conn)
}

func listDamageTypes(ctx context.Context, q postgres.Queryer) ([]*domain.DamageType, error) {
	return queryAll(ctx, q, squirrel.Select(damageTypeColumns...).From(damageTypesTable).OrderBy("name ASC"), scanDamageType)
}

func (r *catalogRepository) GetDamageType(ctx context.Context, id string) (*domain.DamageType, error) {
	return queryOne(ctx, r.conn, squirrel.Select(damageTypeColumns...).From(damageTypesTable).Where(squirrel.Eq{"id": id}), scanDamageType)
}

func (r *catalogRepository) CreateDamageType(ctx context.Context, damageType *domain.DamageType) error {
	return insertDamageTypes(ctx, r.conn, []*domain.DamageType{damageType})
}

func insertDamageTypes(ctx context.Context, q postgres.Queryer, damageTypes []*domain.DamageType) error {
	if len(damageTypes) == 0 {
		return nil
	}
	builder := squirrel.Insert(damageTypesTable).Columns(damageTypeColumns...).PlaceholderFormat(squirrel.Dollar)
	for _, d := range damageTypes {
		builder = builder.Values(d.ID, d.Name, d.Description, d.CreatedAt)
	}
	return execBuilder(ctx, q, builder)
}

// Maquininhas

var cardMachineColumns = []string{"id", "name", "active", "rates", "created_at", "updated_at"}

func scanCardMachine(row rowScanner) (*domain.CardMachine, error) {
	m := &domain.CardMachine{}
	var rates []byte
	if err := row.Scan(&m.ID, &m.Name, &m.Active, &rates, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if len(rates) > 0 {
		if err := json.Unmarshal(rates, &m.Rates); err != nil {
			return nil, fmt.Errorf("taxas da maquininha %s: %w", m.ID, err)
		}
	}
	return m, nil
}

func (r *catalogRepository) ListCardMachines(ctx context.Context) ([]*domain.CardMachine, error) {
	return listCardMachines(ctx, r.conn)
}

func listCardMachines(ctx context.Context, q postgres.Queryer) ([]*domain.CardMachine, error) {
	return queryAll(ctx, q, squirrel.Select(cardMachineColumns...).From(cardMachinesTable).OrderBy("name ASC"), scanCardMachine)
}

func (r *catalogRepository) GetCardMachine(ctx context.Context, id string) (*domain.CardMachine, error) {
	return queryOne(ctx, r.conn, squirrel.Select(cardMachineColumns...).From(cardMachinesTable).Where(squirrel.Eq{"id": id}), scanCardMachine)
}

func (r *catalogRepository) CreateCardMachine(ctx context.Context, machine *domain.CardMachine) error {
	return insertCardMachines(ctx, r.conn, []*domain.CardMachine{machine})
}

func insertCardMachines(ctx context.Context, q postgres.Queryer, machines []*domain.CardMachine) error {
	if len(machines) == 0 {
		return nil
	}
	builder := squirrel.Insert(cardMachinesTable).Columns(cardMachineColumns...).PlaceholderFormat(squirrel.Dollar)
	for _, m := range machines {
		rates, err := json.Marshal(m.Rates)
		if err != nil {
			return err
		}
		builder = builder.Values(m.ID, m.Name, m.Active, rates, m.CreatedAt, m.UpdatedAt)
	}
	return execBuilder(ctx, q, builder)
}

func (r *catalogRepository) UpdateCardMachine(ctx context.Context, m *domain.CardMachine) error {
	rates, err := json.Marshal(m.Rates)
	if err != nil {
		return err
	}

	builder := squirrel.
		Update(cardMachinesTable).
		Set("name", m.Name).
		Set("active", m.Active).
		Set("rates", rates).
		Set("updated_at", m.UpdatedAt).
		Where(squirrel.Eq{"id": m.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if err := execBuilder(ctx, r.conn, builder); err != nil {
		return fmt.Errorf("erro ao atualizar maquininha %s: %w", m.ID, err)
	}
	return nil
}
