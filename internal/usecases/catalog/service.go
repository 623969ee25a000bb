// Package catalog cadastra lojas, categorias, modelos, aparelhos de troca, tipos de avaria e maquininhas
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
	"github.com/vfg2006/phone-retail-admin-api/pkg/utils"
)

// PriceBook é a parte do motor de preços usada pelo cadastro
type PriceBook interface {
	Commit(ctx context.Context, changes []domain.PriceChange) error
	Lookup(ctx context.Context, key domain.CellKey) (domain.Cents, bool, error)
	ListCells(ctx context.Context, kind domain.EntityKind) ([]*domain.PriceCellView, error)
}

type Cataloger interface {
	ListStores(ctx context.Context, includeInactive bool) ([]*domain.Store, error)
	CreateStore(ctx context.Context, req *domain.CreateStoreRequest) (*domain.Store, error)
	UpdateStore(ctx context.Context, req *domain.UpdateStoreRequest) (*domain.Store, error)

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.Category, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]*domain.Subcategory, error)
	CreateSubcategory(ctx context.Context, req *domain.CreateSubcategoryRequest) (*domain.Subcategory, error)

	ListPhoneModels(ctx context.Context, filter domain.SelectionFilter) ([]*domain.PhoneModelView, error)
	GetPhoneModel(ctx context.Context, id string) (*domain.PhoneModelView, error)
	CreatePhoneModel(ctx context.Context, claims *domain.Claims, req *domain.CreatePhoneModelRequest) (*domain.PhoneModelView, error)
	UpdatePhoneModel(ctx context.Context, req *domain.UpdatePhoneModelRequest) (*domain.PhoneModel, error)
	TogglePhoneModel(ctx context.Context, id string) error
	DeletePhoneModel(ctx context.Context, id string) error

	ListTradeInDevices(ctx context.Context, filter domain.SelectionFilter) ([]*domain.TradeInDeviceView, error)
	CreateTradeInDevice(ctx context.Context, claims *domain.Claims, req *domain.CreateTradeInDeviceRequest) (*domain.TradeInDeviceView, error)
	UpdateTradeInDevice(ctx context.Context, req *domain.UpdateTradeInDeviceRequest) (*domain.TradeInDevice, error)

	ListDamageTypes(ctx context.Context) ([]*domain.DamageType, error)
	CreateDamageType(ctx context.Context, req *domain.CreateDamageTypeRequest) (*domain.DamageType, error)
	UpdateDamageType(ctx context.Context, req *domain.UpdateDamageTypeRequest) error
	DeleteDamageType(ctx context.Context, id string) error
	ListDamageMatrix(ctx context.Context) ([]*domain.DamageMatrixRow, error)

	ListCardMachines(ctx context.Context) ([]*domain.CardMachine, error)
	CreateCardMachine(ctx context.Context, req *domain.CreateCardMachineRequest) (*domain.CardMachine, error)
	UpdateCardMachine(ctx context.Context, req *domain.UpdateCardMachineRequest) (*domain.CardMachine, error)
}

type Service struct {
	catalog repository.CatalogRepository
	stores  repository.StoreRepository
	prices  PriceBook
	now     func() time.Time
}

func NewService(catalog repository.CatalogRepository, stores repository.StoreRepository, prices PriceBook) *Service {
	return &Service{
		catalog: catalog,
		stores:  stores,
		prices:  prices,
		now:     time.Now,
	}
}

func (s *Service) ListStores(ctx context.Context, includeInactive bool) ([]*domain.Store, error) {
	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar lojas")
	}

	if includeInactive {
		return stores, nil
	}

	active := make([]*domain.Store, 0, len(stores))
	for _, store := range stores {
		if store.Active {
			active = append(active, store)
		}
	}
	return active, nil
}

func (s *Service) CreateStore(ctx context.Context, req *domain.CreateStoreRequest) (*domain.Store, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome da loja é obrigatório")
	}

	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar lojas")
	}
	for _, store := range stores {
		if strings.EqualFold(store.Name, name) {
			return nil, NewCatalogError(ErrAlreadyExists, apiErrors.ErrInvalidRequest, "Já existe uma loja com este nome")
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrInternalServer, "Erro ao gerar id")
	}

	now := s.now().UTC()
	store := &domain.Store{
		ID:        id,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Active != nil {
		store.Active = *req.Active
	}

	if err := s.stores.CreateStore(ctx, store); err != nil {
		return nil, dbError(err, "Erro ao criar loja")
	}

	log.ForContext(ctx).Infof("Loja %s criada", store.ID)
	return store, nil
}

func (s *Service) UpdateStore(ctx context.Context, req *domain.UpdateStoreRequest) (*domain.Store, error) {
	store, err := s.stores.GetStore(ctx, req.ID)
	if err != nil {
		return nil, dbError(err, "Erro ao consultar loja")
	}
	if store == nil {
		return nil, notFound("loja", req.ID)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome da loja é obrigatório")
		}
		store.Name = name
	}
	if req.Active != nil {
		store.Active = *req.Active
	}
	store.UpdatedAt = s.now().UTC()

	if err := s.stores.UpdateStore(ctx, store); err != nil {
		return nil, dbError(err, "Erro ao atualizar loja")
	}

	return store, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar categorias")
	}
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, req *domain.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome da categoria é obrigatório")
	}

	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar categorias")
	}
	for _, category := range categories {
		if strings.EqualFold(category.Name, name) {
			return nil, NewCatalogError(ErrAlreadyExists, apiErrors.ErrInvalidRequest, "Categoria já cadastrada")
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrInternalServer, "Erro ao gerar id")
	}

	category := &domain.Category{ID: id, Name: name, CreatedAt: s.now().UTC()}
	if err := s.catalog.CreateCategory(ctx, category); err != nil {
		return nil, dbError(err, "Erro ao criar categoria")
	}

	return category, nil
}

func (s *Service) ListSubcategories(ctx context.Context, categoryID string) ([]*domain.Subcategory, error) {
	subcategories, err := s.catalog.ListSubcategories(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar subcategorias")
	}

	if categoryID == "" {
		return subcategories, nil
	}

	filtered := make([]*domain.Subcategory, 0)
	for _, sub := range subcategories {
		if sub.CategoryID == categoryID {
			filtered = append(filtered, sub)
		}
	}
	return filtered, nil
}

func (s *Service) CreateSubcategory(ctx context.Context, req *domain.CreateSubcategoryRequest) (*domain.Subcategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.CategoryID == "" {
		return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Categoria e nome são obrigatórios")
	}

	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	subcategories, err := s.catalog.ListSubcategories(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar subcategorias")
	}
	for _, sub := range subcategories {
		if sub.CategoryID == req.CategoryID && strings.EqualFold(sub.Name, name) {
			return nil, NewCatalogError(ErrAlreadyExists, apiErrors.ErrInvalidRequest, "Subcategoria já cadastrada")
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrInternalServer, "Erro ao gerar id")
	}

	sub := &domain.Subcategory{ID: id, CategoryID: req.CategoryID, Name: name, CreatedAt: s.now().UTC()}
	if err := s.catalog.CreateSubcategory(ctx, sub); err != nil {
		return nil, dbError(err, "Erro ao criar subcategoria")
	}

	return sub, nil
}

func (s *Service) requireCategory(ctx context.Context, id string) error {
	category, err := s.catalog.GetCategory(ctx, id)
	if err != nil {
		return dbError(err, "Erro ao consultar categoria")
	}
	if category == nil {
		return notFound("categoria", id)
	}
	return nil
}

func (s *Service) requireSubcategory(ctx context.Context, id string) (*domain.Subcategory, error) {
	sub, err := s.catalog.GetSubcategory(ctx, id)
	if err != nil {
		return nil, dbError(err, "Erro ao consultar subcategoria")
	}
	if sub == nil {
		return nil, notFound("subcategoria", id)
	}
	return sub, nil
}

func dbError(err error, details string) *CatalogError {
	return NewCatalogError(err, apiErrors.ErrDatabaseOperation, details)
}

func notFound(entity, id string) *CatalogError {
	return NewCatalogError(ErrNotFound, apiErrors.ErrNotFound, entity+" "+id)
}

func notImplemented(operation string) *CatalogError {
	return NewCatalogError(ErrNotImplemented, apiErrors.ErrNotImplemented, operation)
}
