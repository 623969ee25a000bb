// Package memory implementa os repositórios em memória, usados em desenvolvimento e nos testes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

var (
	_ repository.StoreRepository   = (*Store)(nil)
	_ repository.CatalogRepository = (*Store)(nil)
	_ repository.PriceRepository   = (*Store)(nil)
	_ repository.UserRepository    = (*Store)(nil)
	_ repository.BackupRepository  = (*Store)(nil)
)

type Store struct {
	mu            sync.RWMutex
	stores        map[string]domain.Store
	categories    map[string]domain.Category
	subcategories map[string]domain.Subcategory
	models        map[string]domain.PhoneModel
	tradeIns      map[string]domain.TradeInDevice
	damageTypes   map[string]domain.DamageType
	cardMachines  map[string]domain.CardMachine
	cells         map[domain.CellKey]domain.PriceCell
	history       []domain.PriceHistoryEntry
	users         map[int]domain.User
	nextUserID    int
}

func New() *Store {
	return &Store{
		stores:        make(map[string]domain.Store),
		categories:    make(map[string]domain.Category),
		subcategories: make(map[string]domain.Subcategory),
		models:        make(map[string]domain.PhoneModel),
		tradeIns:      make(map[string]domain.TradeInDevice),
		damageTypes:   make(map[string]domain.DamageType),
		cardMachines:  make(map[string]domain.CardMachine),
		cells:         make(map[domain.CellKey]domain.PriceCell),
		users:         make(map[int]domain.User),
		nextUserID:    1,
	}
}

func sortedValues[T any](m map[string]T, less func(a, b *T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		item := v
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func getCopy[T any](m map[string]T, id string) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

// Lojas

func (s *Store) ListStores(_ context.Context) ([]*domain.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.stores, func(a, b *domain.Store) bool { return a.Name < b.Name }), nil
}

func (s *Store) GetStore(_ context.Context, id string) (*domain.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCopy(s.stores, id), nil
}

func (s *Store) CreateStore(_ context.Context, store *domain.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[store.ID] = *store
	return nil
}

func (s *Store) UpdateStore(_ context.Context, store *domain.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[store.ID] = *store
	return nil
}

// Catálogo

func (s *Store) ListCategories(_ context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.categories, func(a, b *domain.Category) bool { return a.Name < b.Name }), nil
}

func (s *Store) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCopy(s.categories, id), nil
}

func (s *Store) CreateCategory(_ context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = *category
	return nil
}

func (s *Store) ListSubcategories(_ context.Context) ([]*domain.Subcategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.subcategories, func(a, b *domain.Subcategory) bool { return a.Name < b.Name }), nil
}

func (s *Store) GetSubcategory(_ context.Context, id string) (*domain.Subcategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCopy(s.subcategories, id), nil
}

func (s *Store) CreateSubcategory(_ context.Context, subcategory *domain.Subcategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subcategories[subcategory.ID] = *subcategory
	return nil
}

func (s *Store) ListPhoneModels(_ context.Context) ([]*domain.PhoneModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.models, func(a, b *domain.PhoneModel) bool {
		if a.Brand != b.Brand {
			return a.Brand < b.Brand
		}
		return a.Name < b.Name
	}), nil
}

func (s *Store) GetPhoneModel(_ context.Context, id string) (*domain.PhoneModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCopy(s.models, id), nil
}

func (s *Store) CreatePhoneModel(_ context.Context, model *domain.PhoneModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[model.ID] = *model
	return nil
}

func (s *Store) UpdatePhoneModel(_ context.Context, model *domain.PhoneModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[model.ID] = *model
	return nil
}

func (s *Store) ListTradeInDevices(_ context.Context) ([]*domain.TradeInDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.tradeIns, func(a, b *domain.TradeInDevice) bool { return a.Name < b.Name }), nil
}

func (s *Store) GetTradeInDevice(_ context.Context, id string) (*domain.TradeInDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCopy(s.tradeIns, id), nil
}

func (s *Store) CreateTradeInDevice(_ context.Context, device *domain.TradeInDevice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tradeIns[device.ID] = *device
	return nil
}

func (s *Store) UpdateTradeInDevice(_ context.Context, device *domain.TradeInDevice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tradeIns[device.ID] = *device
	return nil
}

func (s *Store) ListDamageTypes(_ context.Context) ([]*domain.DamageType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.damageTypes, func(a, b *domain.DamageType) bool { return a.Name < b.Name }), nil
}

func (s *Store) GetDamageType(_ context.Context, id string) (*domain.DamageType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getCopy(s.damageTypes, id), nil
}

func (s *Store) CreateDamageType(_ context.Context, damageType *domain.DamageType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.damageTypes[damageType.ID] = *damageType
	return nil
}

func (s *Store) ListCardMachines(_ context.Context) ([]*domain.CardMachine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	machines := sortedValues(s.cardMachines, func(a, b *domain.CardMachine) bool { return a.Name < b.Name })
	for _, m := range machines {
		m.Rates = append([]domain.InstallmentRate(nil), m.Rates...)
	}
	return machines, nil
}

func (s *Store) GetCardMachine(_ context.Context, id string) (*domain.CardMachine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := getCopy(s.cardMachines, id)
	if m != nil {
		m.Rates = append([]domain.InstallmentRate(nil), m.Rates...)
	}
	return m, nil
}

func (s *Store) CreateCardMachine(_ context.Context, machine *domain.CardMachine) error {
	return s.putCardMachine(machine)
}

func (s *Store) UpdateCardMachine(_ context.Context, machine *domain.CardMachine) error {
	return s.putCardMachine(machine)
}

func (s *Store) putCardMachine(machine *domain.CardMachine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *machine
	stored.Rates = append([]domain.InstallmentRate(nil), machine.Rates...)
	s.cardMachines[machine.ID] = stored
	return nil
}

// Preços

func (s *Store) ListCells(_ context.Context, kind domain.EntityKind) ([]*domain.PriceCell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cells := make([]*domain.PriceCell, 0)
	for _, cell := range s.cells {
		if kind != "" && cell.Kind != kind {
			continue
		}
		c := cell
		cells = append(cells, &c)
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].CellKey.String() < cells[j].CellKey.String() })
	return cells, nil
}

func (s *Store) ApplyChanges(ctx context.Context, changes []domain.PriceChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, change := range changes {
		s.cells[change.CellKey] = domain.PriceCell{CellKey: change.CellKey, Cents: change.After, UpdatedAt: now}
		s.history = append(s.history, domain.PriceHistoryEntry{
			CellKey:   change.CellKey,
			ID:        uuid.New().String(),
			OldCents:  change.Before,
			NewCents:  change.After,
			Operation: change.Operation,
			Magnitude: change.Magnitude,
			UserID:    change.UserID,
			CreatedAt: now,
		})
	}

	return nil
}

func (s *Store) ListHistory(_ context.Context, key domain.CellKey, limit int) ([]*domain.PriceHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	entries := make([]*domain.PriceHistoryEntry, 0)
	for i := len(s.history) - 1; i >= 0 && len(entries) < limit; i-- {
		if s.history[i].CellKey == key {
			entry := s.history[i]
			entries = append(entries, &entry)
		}
	}

	return entries, nil
}

// Usuários

func (s *Store) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.nextUserID++
	s.users[user.ID] = cloneUser(*user)

	return user, nil
}

func (s *Store) UpdateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return nil
	}

	// mesmas regras do update em postgres: campos vazios não sobrescrevem
	if user.Name != "" {
		stored.Name = user.Name
	}
	if user.Lastname != "" {
		stored.Lastname = user.Lastname
	}
	if user.Login != "" {
		stored.Login = user.Login
	}
	if user.Email != "" {
		stored.Email = user.Email
	}
	if user.PasswordHash != "" {
		stored.PasswordHash = user.PasswordHash
	}
	if user.RoleID != 0 {
		stored.RoleID = user.RoleID
	}
	if user.Deleted {
		stored.Deleted = true
		stored.DeletedAt = user.DeletedAt
	}
	stored.Active = user.Active
	stored.Permissions = user.Permissions
	stored.StoreIDs = user.StoreIDs
	stored.UpdatedAt = time.Now().UTC()

	s.users[user.ID] = cloneUser(stored)
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (s *Store) GetUserByLogin(_ context.Context, login string) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return strings.EqualFold(u.Login, login) }), nil
}

func (s *Store) GetUserByID(_ context.Context, userID int) (*domain.User, error) {
	return s.findUser(func(u domain.User) bool { return u.ID == userID }), nil
}

func (s *Store) findUser(match func(domain.User) bool) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if !u.Deleted && match(u) {
			user := cloneUser(u)
			return &user
		}
	}
	return nil
}

func (s *Store) ListUser(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listUsersLocked(), nil
}

func (s *Store) listUsersLocked() []*domain.User {
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		if u.Deleted {
			continue
		}
		user := cloneUser(u)
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func cloneUser(u domain.User) domain.User {
	u.Permissions = append([]domain.Permission{}, u.Permissions...)
	u.StoreIDs = append([]string{}, u.StoreIDs...)
	return u
}

// Backup

func (s *Store) Snapshot(ctx context.Context) (*domain.BackupData, error) {
	s.mu.RLock()
	users := s.listUsersLocked()
	s.mu.RUnlock()

	data := &domain.BackupData{Users: users}
	data.Stores, _ = s.ListStores(ctx)
	data.Categories, _ = s.ListCategories(ctx)
	data.Subcategories, _ = s.ListSubcategories(ctx)
	data.Models, _ = s.ListPhoneModels(ctx)
	data.TradeInDevices, _ = s.ListTradeInDevices(ctx)
	data.DamageTypes, _ = s.ListDamageTypes(ctx)
	data.CardMachines, _ = s.ListCardMachines(ctx)
	data.PriceCells, _ = s.ListCells(ctx, "")

	return data, nil
}

func (s *Store) Restore(ctx context.Context, data *domain.BackupData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stores = indexBy(data.Stores, func(v *domain.Store) string { return v.ID })
	s.categories = indexBy(data.Categories, func(v *domain.Category) string { return v.ID })
	s.subcategories = indexBy(data.Subcategories, func(v *domain.Subcategory) string { return v.ID })
	s.models = indexBy(data.Models, func(v *domain.PhoneModel) string { return v.ID })
	s.tradeIns = indexBy(data.TradeInDevices, func(v *domain.TradeInDevice) string { return v.ID })
	s.damageTypes = indexBy(data.DamageTypes, func(v *domain.DamageType) string { return v.ID })
	s.cardMachines = indexBy(data.CardMachines, func(v *domain.CardMachine) string { return v.ID })

	s.cells = make(map[domain.CellKey]domain.PriceCell, len(data.PriceCells))
	for _, cell := range data.PriceCells {
		if cell != nil {
			s.cells[cell.CellKey] = *cell
		}
	}
	s.history = nil

	return nil
}

func indexBy[T any](items []*T, key func(*T) string) map[string]T {
	out := make(map[string]T, len(items))
	for _, item := range items {
		if item != nil {
			out[key(item)] = *item
		}
	}
	return out
}
