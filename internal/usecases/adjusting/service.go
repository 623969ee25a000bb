// Package adjusting calcula e aplica alterações de preço: ajustes em massa, preços personalizados,
// cópia entre lojas e edição de uma célula. Toda gravação passa por Commit.
package adjusting

import (
	"context"
	"sort"
	"time"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/selecting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/currency"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

const defaultHistoryLimit = 50

type Adjuster interface {
	CreateSession(ctx context.Context, claims *domain.Claims, kind domain.EntityKind) (*domain.BulkSessionResponse, error)
	GetSession(ctx context.Context, claims *domain.Claims, sessionID string) (*domain.BulkSessionResponse, error)
	SessionItems(ctx context.Context, claims *domain.Claims, sessionID string) ([]*domain.BulkSessionItem, error)
	Configure(ctx context.Context, claims *domain.Claims, sessionID string, req *domain.ConfigureBulkSessionRequest) (*domain.BulkSessionResponse, error)
	UpdateSelection(ctx context.Context, claims *domain.Claims, sessionID string, req *domain.UpdateSelectionRequest) (*domain.BulkSessionResponse, error)
	Preview(ctx context.Context, claims *domain.Claims, sessionID string, req *domain.PreviewBulkRequest) (*domain.BulkPreview, error)
	Apply(ctx context.Context, claims *domain.Claims, sessionID string) (*domain.BulkApplyResponse, error)
	ApplyCustom(ctx context.Context, claims *domain.Claims, sessionID string, req *domain.ApplyCustomRequest) (*domain.BulkApplyResponse, error)
	Dismiss(ctx context.Context, claims *domain.Claims, sessionID string) error
	ExpireSessions(ttl time.Duration) int

	ListCells(ctx context.Context, kind domain.EntityKind) ([]*domain.PriceCellView, error)
	History(ctx context.Context, key domain.CellKey, limit int) ([]*domain.PriceHistoryEntry, error)
	UpdateCell(ctx context.Context, claims *domain.Claims, req *domain.UpdateCellRequest) (*domain.PriceCellView, error)
	CopyBetweenStores(ctx context.Context, claims *domain.Claims, req *domain.CopyPricesRequest) (*domain.CopyPricesResponse, error)
}

type Service struct {
	prices     repository.PriceRepository
	catalog    repository.CatalogRepository
	stores     repository.StoreRepository
	collection *Collection
	sessions   *SessionManager
}

func NewService(prices repository.PriceRepository, catalog repository.CatalogRepository, stores repository.StoreRepository) *Service {
	return &Service{
		prices:     prices,
		catalog:    catalog,
		stores:     stores,
		collection: NewCollection(prices),
		sessions:   NewSessionManager(),
	}
}

// Commit aplica um lote de alterações: troca as células na coleção de uma vez, persiste
// e, se o repositório rejeitar, devolve todas as células do lote ao valor anterior.
func (s *Service) Commit(ctx context.Context, changes []domain.PriceChange) error {
	if len(changes) == 0 {
		return nil
	}

	kinds := make([]domain.EntityKind, 0, 1)
	seen := make(map[domain.EntityKind]bool)
	for _, change := range changes {
		if !seen[change.Kind] {
			seen[change.Kind] = true
			kinds = append(kinds, change.Kind)
		}
	}

	if err := s.collection.ensureLoaded(ctx, kinds...); err != nil {
		return NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao carregar preços")
	}

	batch := append([]domain.PriceChange(nil), changes...)
	snap := s.collection.replace(batch)

	if err := s.prices.ApplyChanges(ctx, batch); err != nil {
		s.collection.restore(snap)
		log.ForContext(ctx).WithError(err).Errorf("Gravação de %d preços rejeitada, valores restaurados", len(batch))
		return newError(ErrPersistenceRejected, err.Error())
	}

	log.ForContext(ctx).Infof("%d preços gravados", len(batch))
	return nil
}

// Lookup consulta o valor atual de uma célula na coleção
func (s *Service) Lookup(ctx context.Context, key domain.CellKey) (domain.Cents, bool, error) {
	return s.collection.Lookup(ctx, key)
}

// Reload descarta a coleção em memória, usado depois de uma importação
func (s *Service) Reload() {
	s.collection.Invalidate()
}

// ListCells lista as células do tipo, omitindo as de lojas inativas
func (s *Service) ListCells(ctx context.Context, kind domain.EntityKind) ([]*domain.PriceCellView, error) {
	if !kind.Valid() {
		return nil, newError(ErrInvalidKind, string(kind))
	}

	active, err := s.activeStores(ctx)
	if err != nil {
		return nil, err
	}

	cells, err := s.collection.Cells(ctx, kind)
	if err != nil {
		return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao carregar preços")
	}

	views := make([]*domain.PriceCellView, 0, len(cells))
	for _, cell := range cells {
		if cell.StoreID != "" {
			if _, ok := active[cell.StoreID]; !ok {
				continue
			}
		}
		views = append(views, &domain.PriceCellView{
			CellKey: cell.CellKey,
			Cents:   cell.Cents,
			Display: currency.Format(cell.Cents),
		})
	}

	return views, nil
}

func (s *Service) History(ctx context.Context, key domain.CellKey, limit int) ([]*domain.PriceHistoryEntry, error) {
	if _, err := validateCellKey(key); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.prices.ListHistory(ctx, key, limit)
	if err != nil {
		return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar histórico")
	}
	return entries, nil
}

// UpdateCell edita uma célula a partir do texto digitado; falha na gravação mantém o valor anterior
func (s *Service) UpdateCell(ctx context.Context, claims *domain.Claims, req *domain.UpdateCellRequest) (*domain.PriceCellView, error) {
	key := req.CellKey
	if err := s.validateAddressable(ctx, claims, key); err != nil {
		return nil, err
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	current, existed, err := s.collection.Lookup(ctx, key)
	if err != nil {
		return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao carregar preços")
	}

	field := currency.NewField(current, func(ctx context.Context, cents int64) error {
		return s.Commit(ctx, []domain.PriceChange{{
			CellKey:   key,
			Before:    current,
			After:     cents,
			Existed:   existed,
			Operation: domain.OperationManual,
			Magnitude: currency.Format(cents),
			UserID:    claims.UserID,
		}})
	})
	field.Focus()
	field.Type(req.Amount)

	changed, err := field.Blur(ctx)
	if err != nil {
		return nil, err
	}

	// célula nova com valor zero também precisa existir
	if !changed && !existed {
		if err := s.Commit(ctx, []domain.PriceChange{{
			CellKey:   key,
			After:     field.Value(),
			Operation: domain.OperationManual,
			Magnitude: currency.Format(field.Value()),
			UserID:    claims.UserID,
		}}); err != nil {
			return nil, err
		}
	}

	return &domain.PriceCellView{
		CellKey: key,
		Cents:   field.Value(),
		Display: field.Display(),
	}, nil
}

// CopyBetweenStores copia para a loja de destino os valores por loja da origem.
// Sem confirmação devolve apenas a prévia junto de ErrConfirmationRequired.
func (s *Service) CopyBetweenStores(ctx context.Context, claims *domain.Claims, req *domain.CopyPricesRequest) (*domain.CopyPricesResponse, error) {
	if !req.Kind.Valid() {
		return nil, newError(ErrInvalidKind, string(req.Kind))
	}
	if req.SourceStoreID == "" || req.TargetStoreID == "" {
		return nil, NewAdjustError(ErrInvalidStore, apiErrors.ErrMissingRequiredData, "Loja de origem e destino são obrigatórias")
	}
	if req.SourceStoreID == req.TargetStoreID {
		return nil, newError(ErrSameStore, req.SourceStoreID)
	}

	active, err := s.activeStores(ctx)
	if err != nil {
		return nil, err
	}
	for _, storeID := range []string{req.SourceStoreID, req.TargetStoreID} {
		if _, ok := active[storeID]; !ok {
			return nil, newError(ErrStoreNotFound, storeID)
		}
	}
	if !claims.CanAccessStore(req.TargetStoreID) {
		return nil, newError(ErrStoreForbidden, req.TargetStoreID)
	}

	items, err := s.Items(ctx, req.Kind)
	if err != nil {
		return nil, err
	}

	changes := make([]domain.PriceChange, 0)
	err = s.collection.Read(ctx, req.Kind, func(lookup LookupFunc) {
		for _, item := range items {
			for _, field := range domain.FieldRegistry[req.Kind] {
				if !field.StoreScoped {
					continue
				}

				source := domain.CellKey{Kind: req.Kind, EntityID: item.SelectionID(), Field: field.Name, StoreID: req.SourceStoreID}
				value, ok := lookup(source)
				if !ok {
					continue
				}

				target := source
				target.StoreID = req.TargetStoreID
				current, existed := lookup(target)
				if existed && current == value {
					continue
				}

				changes = append(changes, domain.PriceChange{
					CellKey:   target,
					Before:    current,
					After:     value,
					Existed:   existed,
					Operation: domain.OperationCopy,
					Magnitude: req.SourceStoreID,
					UserID:    claims.UserID,
				})
			}
		}
	})
	if err != nil {
		return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao carregar preços")
	}

	response := &domain.CopyPricesResponse{Changes: changes}
	if !req.Confirm {
		response.Message = "Confirme para sobrescrever os preços da loja de destino"
		return response, newError(ErrConfirmationRequired, req.TargetStoreID)
	}

	if err := s.Commit(ctx, changes); err != nil {
		return nil, err
	}

	response.Applied = true
	response.Message = "Preços copiados com sucesso"
	return response, nil
}

// Items lista as entidades do tipo como itens selecionáveis. A matriz de avarias é o produto
// subcategorias × tipos de avaria.
func (s *Service) Items(ctx context.Context, kind domain.EntityKind) ([]selecting.Item, error) {
	switch kind {
	case domain.KindPhoneModel:
		models, err := s.catalog.ListPhoneModels(ctx)
		if err != nil {
			return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar modelos")
		}
		items := make([]selecting.Item, 0, len(models))
		for _, model := range models {
			items = append(items, model)
		}
		return items, nil

	case domain.KindTradeIn:
		devices, err := s.catalog.ListTradeInDevices(ctx)
		if err != nil {
			return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar aparelhos de troca")
		}
		items := make([]selecting.Item, 0, len(devices))
		for _, device := range devices {
			items = append(items, device)
		}
		return items, nil

	case domain.KindDamageMatrix:
		subcategories, err := s.catalog.ListSubcategories(ctx)
		if err != nil {
			return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar subcategorias")
		}
		damageTypes, err := s.catalog.ListDamageTypes(ctx)
		if err != nil {
			return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar tipos de avaria")
		}

		items := make([]selecting.Item, 0, len(subcategories)*len(damageTypes))
		err = s.collection.Read(ctx, kind, func(lookup LookupFunc) {
			for _, sub := range subcategories {
				for _, damage := range damageTypes {
					row := &domain.DamageMatrixRow{SubcategoryID: sub.ID, DamageTypeID: damage.ID}
					row.DiscountCents, _ = lookup(domain.CellKey{
						Kind:     kind,
						EntityID: row.SelectionID(),
						Field:    domain.FieldDiscount,
					})
					items = append(items, row)
				}
			}
		})
		if err != nil {
			return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao carregar preços")
		}
		return items, nil
	}

	return nil, newError(ErrInvalidKind, string(kind))
}

// activeStores devolve as lojas ativas indexadas pelo id
func (s *Service) activeStores(ctx context.Context) (map[string]*domain.Store, error) {
	stores, err := s.stores.ListStores(ctx)
	if err != nil {
		return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar lojas")
	}

	active := make(map[string]*domain.Store, len(stores))
	for _, store := range stores {
		if store.Active {
			active[store.ID] = store
		}
	}
	return active, nil
}

func sortedStores(stores map[string]*domain.Store, ids []string) []*domain.Store {
	out := make([]*domain.Store, 0, len(ids))
	for _, id := range ids {
		if store, ok := stores[id]; ok {
			out = append(out, store)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// validateCellKey confere tipo e campo e devolve a especificação do campo
func validateCellKey(key domain.CellKey) (domain.FieldSpec, error) {
	if !key.Kind.Valid() {
		return domain.FieldSpec{}, newError(ErrInvalidKind, string(key.Kind))
	}
	if key.EntityID == "" {
		return domain.FieldSpec{}, NewAdjustError(ErrEntityNotFound, apiErrors.ErrMissingRequiredData, "entity_id é obrigatório")
	}

	field, ok := domain.LookupField(key.Kind, key.Field)
	if !ok {
		return domain.FieldSpec{}, newError(ErrInvalidField, key.Field)
	}

	if field.StoreScoped && key.StoreID == "" {
		return domain.FieldSpec{}, newError(ErrInvalidStore, "campo exige loja")
	}
	if !field.StoreScoped && key.StoreID != "" {
		return domain.FieldSpec{}, newError(ErrInvalidStore, "campo não é definido por loja")
	}

	return field, nil
}

// validateAddressable confere se a célula pode ser gravada: entidade existente e loja ativa acessível
func (s *Service) validateAddressable(ctx context.Context, claims *domain.Claims, key domain.CellKey) error {
	if _, err := validateCellKey(key); err != nil {
		return err
	}

	if key.StoreID != "" {
		active, err := s.activeStores(ctx)
		if err != nil {
			return err
		}
		if _, ok := active[key.StoreID]; !ok {
			return newError(ErrStoreNotFound, key.StoreID)
		}
		if !claims.CanAccessStore(key.StoreID) {
			return newError(ErrStoreForbidden, key.StoreID)
		}
	}

	items, err := s.Items(ctx, key.Kind)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.SelectionID() == key.EntityID {
			return nil
		}
	}

	return newError(ErrEntityNotFound, key.EntityID)
}

// validateAmount rejeita texto negativo ou sem dígitos antes de qualquer mutação
func validateAmount(raw string) error {
	if currency.IsNegativeInput(raw) {
		return newError(ErrNegativeValue, raw)
	}
	if !currency.IsValidCurrencyInput(raw) {
		return newError(ErrInvalidAmount, raw)
	}
	return nil
}
