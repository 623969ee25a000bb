package catalog

import (
	"context"
	"strings"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/selecting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/currency"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
	"github.com/vfg2006/phone-retail-admin-api/pkg/utils"
)

func (s *Service) ListPhoneModels(ctx context.Context, filter domain.SelectionFilter) ([]*domain.PhoneModelView, error) {
	f := selecting.NewFilter(filter)
	if !f.Valid() {
		return nil, NewCatalogError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "status do filtro inválido")
	}

	models, err := s.catalog.ListPhoneModels(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar modelos")
	}

	prices, err := s.pricesByEntity(ctx, domain.KindPhoneModel)
	if err != nil {
		return nil, err
	}

	filtered := selecting.Apply(models, f)
	views := make([]*domain.PhoneModelView, 0, len(filtered))
	for _, model := range filtered {
		views = append(views, &domain.PhoneModelView{PhoneModel: model, Prices: prices[model.ID]})
	}

	return views, nil
}

func (s *Service) GetPhoneModel(ctx context.Context, id string) (*domain.PhoneModelView, error) {
	model, err := s.catalog.GetPhoneModel(ctx, id)
	if err != nil {
		return nil, dbError(err, "Erro ao consultar modelo")
	}
	if model == nil {
		return nil, notFound("modelo", id)
	}

	prices, err := s.pricesByEntity(ctx, domain.KindPhoneModel)
	if err != nil {
		return nil, err
	}

	return &domain.PhoneModelView{PhoneModel: model, Prices: prices[model.ID]}, nil
}

// CreatePhoneModel valida os preços iniciais antes de gravar o modelo, para não deixar cadastro pela metade
func (s *Service) CreatePhoneModel(ctx context.Context, claims *domain.Claims, req *domain.CreatePhoneModelRequest) (*domain.PhoneModelView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Brand) == "" || req.CategoryID == "" || req.SubcategoryID == "" {
		return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome, marca, categoria e subcategoria são obrigatórios")
	}

	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	sub, err := s.requireSubcategory(ctx, req.SubcategoryID)
	if err != nil {
		return nil, err
	}
	if sub.CategoryID != req.CategoryID {
		return nil, NewCatalogError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "Subcategoria não pertence à categoria")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrInternalServer, "Erro ao gerar id")
	}

	changes, err := s.initialPrices(ctx, claims, domain.KindPhoneModel, id, req.Prices)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	model := &domain.PhoneModel{
		ID:            id,
		Name:          name,
		Brand:         strings.TrimSpace(req.Brand),
		Storage:       strings.TrimSpace(req.Storage),
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.catalog.CreatePhoneModel(ctx, model); err != nil {
		return nil, dbError(err, "Erro ao criar modelo")
	}

	if err := s.commitInitialPrices(ctx, model.ID, changes); err != nil {
		return nil, err
	}

	return s.GetPhoneModel(ctx, model.ID)
}

func (s *Service) UpdatePhoneModel(ctx context.Context, req *domain.UpdatePhoneModelRequest) (*domain.PhoneModel, error) {
	model, err := s.catalog.GetPhoneModel(ctx, req.ID)
	if err != nil {
		return nil, dbError(err, "Erro ao consultar modelo")
	}
	if model == nil {
		return nil, notFound("modelo", req.ID)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome do modelo é obrigatório")
		}
		model.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		model.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Storage != nil {
		model.Storage = strings.TrimSpace(*req.Storage)
	}
	if req.CategoryID != nil {
		if err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		model.CategoryID = *req.CategoryID
	}
	if req.SubcategoryID != nil {
		if _, err := s.requireSubcategory(ctx, *req.SubcategoryID); err != nil {
			return nil, err
		}
		model.SubcategoryID = *req.SubcategoryID
	}

	model.UpdatedAt = s.now().UTC()
	if err := s.catalog.UpdatePhoneModel(ctx, model); err != nil {
		return nil, dbError(err, "Erro ao atualizar modelo")
	}

	return model, nil
}

func (s *Service) TogglePhoneModel(ctx context.Context, id string) error {
	return notImplemented("ativar ou desativar modelo")
}

func (s *Service) DeletePhoneModel(ctx context.Context, id string) error {
	return notImplemented("excluir modelo")
}

func (s *Service) ListTradeInDevices(ctx context.Context, filter domain.SelectionFilter) ([]*domain.TradeInDeviceView, error) {
	f := selecting.NewFilter(filter)
	if !f.Valid() {
		return nil, NewCatalogError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "status do filtro inválido")
	}

	devices, err := s.catalog.ListTradeInDevices(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar aparelhos de troca")
	}

	prices, err := s.pricesByEntity(ctx, domain.KindTradeIn)
	if err != nil {
		return nil, err
	}

	filtered := selecting.Apply(devices, f)
	views := make([]*domain.TradeInDeviceView, 0, len(filtered))
	for _, device := range filtered {
		views = append(views, &domain.TradeInDeviceView{TradeInDevice: device, Prices: prices[device.ID]})
	}

	return views, nil
}

func (s *Service) CreateTradeInDevice(ctx context.Context, claims *domain.Claims, req *domain.CreateTradeInDeviceRequest) (*domain.TradeInDeviceView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.SubcategoryID == "" {
		return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome e subcategoria são obrigatórios")
	}

	if _, err := s.requireSubcategory(ctx, req.SubcategoryID); err != nil {
		return nil, err
	}

	if req.ModelID != "" {
		model, err := s.catalog.GetPhoneModel(ctx, req.ModelID)
		if err != nil {
			return nil, dbError(err, "Erro ao consultar modelo")
		}
		if model == nil {
			return nil, notFound("modelo", req.ModelID)
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrInternalServer, "Erro ao gerar id")
	}

	changes, err := s.initialPrices(ctx, claims, domain.KindTradeIn, id, req.Prices)
	if err != nil {
		return nil, err
	}
	if err := validateTradeInRange(changes); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	device := &domain.TradeInDevice{
		ID:            id,
		ModelID:       req.ModelID,
		Name:          name,
		SubcategoryID: req.SubcategoryID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.catalog.CreateTradeInDevice(ctx, device); err != nil {
		return nil, dbError(err, "Erro ao criar aparelho de troca")
	}

	if err := s.commitInitialPrices(ctx, device.ID, changes); err != nil {
		return nil, err
	}

	prices, err := s.pricesByEntity(ctx, domain.KindTradeIn)
	if err != nil {
		return nil, err
	}

	return &domain.TradeInDeviceView{TradeInDevice: device, Prices: prices[device.ID]}, nil
}

func (s *Service) UpdateTradeInDevice(ctx context.Context, req *domain.UpdateTradeInDeviceRequest) (*domain.TradeInDevice, error) {
	device, err := s.catalog.GetTradeInDevice(ctx, req.ID)
	if err != nil {
		return nil, dbError(err, "Erro ao consultar aparelho de troca")
	}
	if device == nil {
		return nil, notFound("aparelho de troca", req.ID)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, NewCatalogError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome do aparelho é obrigatório")
		}
		device.Name = strings.TrimSpace(*req.Name)
	}
	if req.SubcategoryID != nil {
		if _, err := s.requireSubcategory(ctx, *req.SubcategoryID); err != nil {
			return nil, err
		}
		device.SubcategoryID = *req.SubcategoryID
	}
	if req.Active != nil {
		device.Active = *req.Active
	}

	device.UpdatedAt = s.now().UTC()
	if err := s.catalog.UpdateTradeInDevice(ctx, device); err != nil {
		return nil, dbError(err, "Erro ao atualizar aparelho de troca")
	}

	return device, nil
}

// initialPrices converte os valores digitados no cadastro em alterações de célula.
// Nada é gravado aqui: qualquer valor inválido recusa o cadastro inteiro.
func (s *Service) initialPrices(ctx context.Context, claims *domain.Claims, kind domain.EntityKind, entityID string, prices []domain.InitialPrice) ([]domain.PriceChange, error) {
	if len(prices) == 0 {
		return nil, nil
	}

	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, dbError(err, "Erro ao listar lojas")
	}
	active := make(map[string]bool, len(stores))
	for _, store := range stores {
		active[store.ID] = store.Active
	}

	seen := make(map[domain.CellKey]bool, len(prices))
	changes := make([]domain.PriceChange, 0, len(prices))
	for _, price := range prices {
		spec, ok := domain.LookupField(kind, price.Field)
		if !ok {
			return nil, NewCatalogError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "campo inválido: "+price.Field)
		}

		key := domain.CellKey{Kind: kind, EntityID: entityID, Field: spec.Name}
		if spec.StoreScoped {
			if !active[price.StoreID] {
				return nil, notFound("loja", price.StoreID)
			}
			if claims != nil && !claims.CanAccessStore(price.StoreID) {
				return nil, NewCatalogError(ErrStoreForbidden, apiErrors.ErrInsufficientPrivilege, price.StoreID)
			}
			key.StoreID = price.StoreID
		} else if price.StoreID != "" {
			return nil, NewCatalogError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "campo não é definido por loja: "+price.Field)
		}

		if seen[key] {
			return nil, NewCatalogError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "valor repetido para "+key.String())
		}
		seen[key] = true

		if currency.IsNegativeInput(price.Amount) {
			return nil, NewCatalogError(ErrNegativeValue, apiErrors.ErrNegativeValue, price.Amount)
		}
		if !currency.IsValidCurrencyInput(price.Amount) {
			return nil, NewCatalogError(ErrInvalidAmount, apiErrors.ErrInvalidFormat, price.Amount)
		}

		change := domain.PriceChange{
			CellKey:   key,
			After:     currency.ParseInputToCents(price.Amount),
			Operation: domain.OperationManual,
		}
		if claims != nil {
			change.UserID = claims.UserID
		}
		changes = append(changes, change)
	}

	return changes, nil
}

// validateTradeInRange exige mínimo menor ou igual ao máximo em cada loja informada
func validateTradeInRange(changes []domain.PriceChange) error {
	mins := make(map[string]domain.Cents)
	maxs := make(map[string]domain.Cents)
	for _, change := range changes {
		switch change.Field {
		case domain.FieldMinValue:
			mins[change.StoreID] = change.After
		case domain.FieldMaxValue:
			maxs[change.StoreID] = change.After
		}
	}

	for storeID, minValue := range mins {
		if maxValue, ok := maxs[storeID]; ok && minValue > maxValue {
			return NewCatalogError(ErrInvalidRequest, apiErrors.ErrInvalidRequest, "valor mínimo maior que o máximo na loja "+storeID)
		}
	}
	return nil
}

func (s *Service) commitInitialPrices(ctx context.Context, entityID string, changes []domain.PriceChange) error {
	if len(changes) == 0 {
		return nil
	}

	if err := s.prices.Commit(ctx, changes); err != nil {
		log.ForContext(ctx).WithError(err).Errorf("Cadastro %s gravado sem os preços iniciais", entityID)
		return err
	}
	return nil
}

// pricesByEntity agrupa as células do tipo pelo id da entidade
func (s *Service) pricesByEntity(ctx context.Context, kind domain.EntityKind) (map[string][]*domain.PriceCellView, error) {
	cells, err := s.prices.ListCells(ctx, kind)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*domain.PriceCellView)
	for _, cell := range cells {
		grouped[cell.EntityID] = append(grouped[cell.EntityID], cell)
	}
	return grouped, nil
}
