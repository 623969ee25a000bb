package memory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const defaultAdminPassword = "Admin@123"

type seedModel struct {
	id, name, brand, storage, category, subcategory string
	cost                                           domain.Cents
	prices                                         map[string]domain.Cents
}

type seedTradeIn struct {
	id, modelID, name, subcategory string
	minValues, maxValues           map[string]domain.Cents
}

// NewSeeded cria o armazenamento com dados de demonstração e um administrador.
// Sem senha informada usa uma senha padrão de desenvolvimento e avisa no log.
func NewSeeded(adminPassword string, demoData bool) (*Store, error) {
	s := New()
	now := time.Now().UTC()

	if adminPassword == "" {
		logrus.Warn("SEED_ADMIN_PASSWORD não definida, usando senha padrão de desenvolvimento")
		adminPassword = defaultAdminPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.users[s.nextUserID] = domain.User{
		ID:           s.nextUserID,
		Name:         "Administrador",
		Lastname:     "Sistema",
		Login:        "admin",
		Email:        "admin@loja.local",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       domain.RoleAdmin,
		Permissions:  append([]domain.Permission{}, domain.AllPermissions...),
		StoreIDs:     []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextUserID++

	if demoData {
		s.seedCatalog(now)
	}

	return s, nil
}

func (s *Store) seedCatalog(now time.Time) {
	for _, store := range []domain.Store{
		{ID: "lj0001", Name: "Loja Centro", Active: true},
		{ID: "lj0002", Name: "Loja Shopping Norte", Active: true},
		{ID: "lj0003", Name: "Loja Aeroporto", Active: false},
	} {
		store.CreatedAt, store.UpdatedAt = now, now
		s.stores[store.ID] = store
	}

	s.categories["ct0001"] = domain.Category{ID: "ct0001", Name: "Smartphones", CreatedAt: now}
	s.categories["ct0002"] = domain.Category{ID: "ct0002", Name: "Tablets", CreatedAt: now}

	for _, sub := range []domain.Subcategory{
		{ID: "sc0001", CategoryID: "ct0001", Name: "iPhone"},
		{ID: "sc0002", CategoryID: "ct0001", Name: "Galaxy S"},
		{ID: "sc0003", CategoryID: "ct0002", Name: "iPad"},
	} {
		sub.CreatedAt = now
		s.subcategories[sub.ID] = sub
	}

	models := []seedModel{
		{"md0001", "iPhone 13", "Apple", "128GB", "ct0001", "sc0001", 320000, map[string]domain.Cents{"lj0001": 429900, "lj0002": 439900}},
		{"md0002", "iPhone 14 Pro", "Apple", "256GB", "ct0001", "sc0001", 550000, map[string]domain.Cents{"lj0001": 699900, "lj0002": 709900, "lj0003": 719900}},
		{"md0003", "Galaxy S23", "Samsung", "256GB", "ct0001", "sc0002", 310000, map[string]domain.Cents{"lj0001": 399900}},
		{"md0004", "iPad 10", "Apple", "64GB", "ct0002", "sc0003", 240000, map[string]domain.Cents{"lj0002": 319900}},
	}
	for _, m := range models {
		s.models[m.id] = domain.PhoneModel{
			ID: m.id, Name: m.name, Brand: m.brand, Storage: m.storage,
			CategoryID: m.category, SubcategoryID: m.subcategory, Active: true,
			CreatedAt: now, UpdatedAt: now,
		}
		s.putCell(domain.CellKey{Kind: domain.KindPhoneModel, EntityID: m.id, Field: domain.FieldCost}, m.cost, now)
		for storeID, cents := range m.prices {
			s.putCell(domain.CellKey{Kind: domain.KindPhoneModel, EntityID: m.id, Field: domain.FieldPrice, StoreID: storeID}, cents, now)
		}
	}

	tradeIns := []seedTradeIn{
		{"tr0001", "md0001", "iPhone 13 usado", "sc0001",
			map[string]domain.Cents{"lj0001": 150000, "lj0002": 140000},
			map[string]domain.Cents{"lj0001": 220000, "lj0002": 210000}},
		{"tr0002", "md0003", "Galaxy S23 usado", "sc0002",
			map[string]domain.Cents{"lj0001": 120000},
			map[string]domain.Cents{"lj0001": 180000}},
	}
	for _, t := range tradeIns {
		s.tradeIns[t.id] = domain.TradeInDevice{
			ID: t.id, ModelID: t.modelID, Name: t.name, SubcategoryID: t.subcategory, Active: true,
			CreatedAt: now, UpdatedAt: now,
		}
		for storeID, cents := range t.minValues {
			s.putCell(domain.CellKey{Kind: domain.KindTradeIn, EntityID: t.id, Field: domain.FieldMinValue, StoreID: storeID}, cents, now)
		}
		for storeID, cents := range t.maxValues {
			s.putCell(domain.CellKey{Kind: domain.KindTradeIn, EntityID: t.id, Field: domain.FieldMaxValue, StoreID: storeID}, cents, now)
		}
	}

	for _, d := range []domain.DamageType{
		{ID: "dm0001", Name: "Tela trincada", Description: "Vidro ou display com trincas visíveis"},
		{ID: "dm0002", Name: "Bateria degradada", Description: "Saúde da bateria abaixo de 80%"},
		{ID: "dm0003", Name: "Carcaça riscada", Description: "Riscos profundos na traseira ou laterais"},
	} {
		d.CreatedAt = now
		s.damageTypes[d.ID] = d
	}

	discounts := map[[2]string]domain.Cents{
		{"sc0001", "dm0001"}: 60000,
		{"sc0001", "dm0002"}: 25000,
		{"sc0001", "dm0003"}: 15000,
		{"sc0002", "dm0001"}: 50000,
		{"sc0002", "dm0002"}: 20000,
	}
	for pair, cents := range discounts {
		s.putCell(domain.CellKey{Kind: domain.KindDamageMatrix, EntityID: domain.DamageMatrixEntityID(pair[0], pair[1]), Field: domain.FieldDiscount}, cents, now)
	}

	s.cardMachines["cm0001"] = domain.CardMachine{
		ID: "cm0001", Name: "Stone", Active: true, CreatedAt: now, UpdatedAt: now,
		Rates: []domain.InstallmentRate{
			{Installments: 1, RatePercent: decimal.RequireFromString("2.49")},
			{Installments: 6, RatePercent: decimal.RequireFromString("8.99")},
			{Installments: 12, RatePercent: decimal.RequireFromString("14.5")},
		},
	}
}

func (s *Store) putCell(key domain.CellKey, cents domain.Cents, now time.Time) {
	s.cells[key] = domain.PriceCell{CellKey: key, Cents: cents, UpdatedAt: now}
}
