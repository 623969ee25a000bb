package adjusting

import (
	"context"
	"sort"
	"time"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/selecting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/currency"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

func (s *Service) CreateSession(ctx context.Context, claims *domain.Claims, kind domain.EntityKind) (*domain.BulkSessionResponse, error) {
	if !kind.Valid() {
		return nil, newError(ErrInvalidKind, string(kind))
	}

	session, err := s.sessions.Open(claims.UserID, kind)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).Infof("Sessão de edição em massa %s aberta para %s", session.ID(), kind)

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.response(), nil
}

func (s *Service) GetSession(ctx context.Context, claims *domain.Claims, sessionID string) (*domain.BulkSessionResponse, error) {
	session, err := s.sessions.Get(sessionID, claims.UserID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.response(), nil
}

// SessionItems lista os itens visíveis pelo filtro da sessão, marcando os selecionados
func (s *Service) SessionItems(ctx context.Context, claims *domain.Claims, sessionID string) ([]*domain.BulkSessionItem, error) {
	session, err := s.sessions.Get(sessionID, claims.UserID)
	if err != nil {
		return nil, err
	}

	items, err := s.Items(ctx, session.kind)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	visible := selecting.Apply(items, session.filter)
	out := make([]*domain.BulkSessionItem, 0, len(visible))
	for _, item := range visible {
		out = append(out, &domain.BulkSessionItem{
			ID:         item.SelectionID(),
			Label:      item.SearchText(),
			CategoryID: item.CategoryKey(),
			Active:     item.IsActive(),
			Selected:   session.selection.Contains(item.SelectionID()),
		})
	}
	return out, nil
}

func (s *Service) Configure(ctx context.Context, claims *domain.Claims, sessionID string, req *domain.ConfigureBulkSessionRequest) (*domain.BulkSessionResponse, error) {
	session, err := s.sessions.Get(sessionID, claims.UserID)
	if err != nil {
		return nil, err
	}

	switch req.Operation {
	case domain.OperationPercentage, domain.OperationFixed, domain.OperationCustom:
	default:
		return nil, newError(ErrInvalidOperation, string(req.Operation))
	}

	fields, err := resolveFields(session.kind, req.Fields)
	if err != nil {
		return nil, err
	}

	active, err := s.activeStores(ctx)
	if err != nil {
		return nil, err
	}

	storeIDs, err := resolveStores(claims, active, req.StoreIDs, needsStores(fields))
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.editable(); err != nil {
		return nil, err
	}

	session.operation = req.Operation
	session.fields = fields
	session.storeIDs = storeIDs
	session.preview = nil
	session.magnitude = ""
	session.direction = ""
	session.lastError = ""
	session.state = domain.SessionConfiguring
	if req.Operation == domain.OperationCustom {
		session.state = domain.SessionCustomEditing
	}
	s.sessions.touch(session)

	return session.response(), nil
}

func (s *Service) UpdateSelection(ctx context.Context, claims *domain.Claims, sessionID string, req *domain.UpdateSelectionRequest) (*domain.BulkSessionResponse, error) {
	session, err := s.sessions.Get(sessionID, claims.UserID)
	if err != nil {
		return nil, err
	}

	filter := selecting.NewFilter(req.Filter)
	if !filter.Valid() {
		return nil, newError(ErrInvalidFilter, filter.Status)
	}

	items, err := s.Items(ctx, session.kind)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(items))
	for _, item := range items {
		known[item.SelectionID()] = struct{}{}
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.editable(); err != nil {
		return nil, err
	}

	switch req.Action {
	case domain.SelectionSelect, domain.SelectionToggle:
		for _, id := range req.IDs {
			if _, ok := known[id]; !ok {
				return nil, newError(ErrEntityNotFound, id)
			}
		}
		if req.Action == domain.SelectionSelect {
			session.selection.Select(req.IDs...)
		} else {
			for _, id := range req.IDs {
				session.selection.Toggle(id)
			}
		}
	case domain.SelectionDeselect:
		session.selection.Deselect(req.IDs...)
	case domain.SelectionSelectAll:
		if !filter.IsZero() {
			session.filter = filter
		}
		session.selection.SelectAll(items, session.filter)
	case domain.SelectionClear:
		session.selection.Clear()
	case domain.SelectionSetFilter:
		session.filter = filter
	default:
		return nil, NewAdjustError(ErrInvalidOperation, apiErrors.ErrInvalidRequest, "ação de seleção inválida")
	}

	session.selection.Retain(items)

	// prévia calculada sobre outra seleção deixa de valer
	if session.state == domain.SessionPreviewing && req.Action != domain.SelectionSetFilter {
		session.state = domain.SessionConfiguring
		session.preview = nil
	}
	s.sessions.touch(session)

	return session.response(), nil
}

func (s *Service) Preview(ctx context.Context, claims *domain.Claims, sessionID string, req *domain.PreviewBulkRequest) (*domain.BulkPreview, error) {
	session, err := s.sessions.Get(sessionID, claims.UserID)
	if err != nil {
		return nil, err
	}

	active, err := s.activeStores(ctx)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.editable(); err != nil {
		return nil, err
	}
	if session.state != domain.SessionConfiguring && session.state != domain.SessionPreviewing {
		return nil, newError(ErrInvalidState, string(session.state))
	}
	if session.selection.Len() == 0 {
		return nil, newError(ErrEmptySelection, "")
	}

	adj, err := ParseAdjustment(session.operation, req.Magnitude, req.Direction)
	if err != nil {
		return nil, err
	}

	storeIDs := activeOnly(active, session.storeIDs)
	if needsStores(session.fields) && len(storeIDs) == 0 && !hasGlobalField(session.fields) {
		return nil, newError(ErrNoStores, "")
	}

	changes, err := s.compute(ctx, session.kind, session.selection.IDs(), session.fields, storeIDs, adj)
	if err != nil {
		return nil, err
	}

	preview := &domain.BulkPreview{
		Operation:        session.operation,
		Direction:        req.Direction,
		Magnitude:        adj.Magnitude,
		AffectedEntities: countEntities(changes),
		AffectedCells:    len(changes),
		Fields:           append([]domain.FieldSpec{}, session.fields...),
		Stores:           sortedStores(active, storeIDs),
		Changes:          changes,
	}

	session.magnitude = req.Magnitude
	session.direction = req.Direction
	session.preview = preview
	session.lastError = ""
	session.state = domain.SessionPreviewing
	s.sessions.touch(session)

	return preview, nil
}

// Apply recalcula o ajuste sobre os valores atuais e grava o lote. Só uma aplicação por sessão.
func (s *Service) Apply(ctx context.Context, claims *domain.Claims, sessionID string) (*domain.BulkApplyResponse, error) {
	session, err := s.sessions.Get(sessionID, claims.UserID)
	if err != nil {
		return nil, err
	}

	active, err := s.activeStores(ctx)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if err := session.editable(); err != nil {
		session.mu.Unlock()
		return nil, err
	}
	if session.state != domain.SessionPreviewing {
		session.mu.Unlock()
		return nil, newError(ErrInvalidState, string(session.state))
	}

	adj, err := ParseAdjustment(session.operation, session.magnitude, session.direction)
	if err != nil {
		session.mu.Unlock()
		return nil, err
	}

	kind := session.kind
	ids := session.selection.IDs()
	fields := append([]domain.FieldSpec{}, session.fields...)
	storeIDs := activeOnly(active, session.storeIDs)
	session.state = domain.SessionApplying
	s.sessions.touch(session)
	session.mu.Unlock()

	// uma vez iniciada, a aplicação vai até o fim mesmo se o cliente desconectar
	ctx = context.WithoutCancel(ctx)

	changes, err := s.compute(ctx, kind, ids, fields, storeIDs, adj)
	if err == nil {
		for i := range changes {
			changes[i].UserID = claims.UserID
		}
		err = s.Commit(ctx, changes)
	}

	return s.finishApply(session, len(changes), err)
}

// ApplyCustom grava valores informados célula a célula. Aqui toda célula é endereçável, mesmo ausente.
func (s *Service) ApplyCustom(ctx context.Context, claims *domain.Claims, sessionID string, req *domain.ApplyCustomRequest) (*domain.BulkApplyResponse, error) {
	session, err := s.sessions.Get(sessionID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if len(req.Cells) == 0 {
		return nil, NewAdjustError(ErrEmptySelection, apiErrors.ErrMissingRequiredData, "nenhuma célula informada")
	}

	active, err := s.activeStores(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.Items(ctx, session.kind)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(items))
	for _, item := range items {
		known[item.SelectionID()] = struct{}{}
	}

	session.mu.Lock()
	if err := session.editable(); err != nil {
		session.mu.Unlock()
		return nil, err
	}
	if session.state != domain.SessionCustomEditing {
		session.mu.Unlock()
		return nil, newError(ErrInvalidState, string(session.state))
	}

	values, order, err := s.validateCustomCells(session, claims, active, known, req.Cells)
	if err != nil {
		session.mu.Unlock()
		return nil, err
	}

	kind := session.kind
	session.state = domain.SessionApplying
	s.sessions.touch(session)
	session.mu.Unlock()

	ctx = context.WithoutCancel(ctx)

	changes := make([]domain.PriceChange, 0, len(order))
	err = s.collection.Read(ctx, kind, func(lookup LookupFunc) {
		for _, key := range order {
			current, existed := lookup(key)
			if existed && current == values[key] {
				continue
			}
			changes = append(changes, domain.PriceChange{
				CellKey:   key,
				Before:    current,
				After:     values[key],
				Existed:   existed,
				Operation: domain.OperationCustom,
				UserID:    claims.UserID,
			})
		}
	})
	if err == nil {
		err = s.Commit(ctx, changes)
	}

	return s.finishApply(session, len(changes), err)
}

func (s *Service) validateCustomCells(session *Session, claims *domain.Claims, active map[string]*domain.Store, known map[string]struct{}, cells []domain.CustomPriceInput) (map[domain.CellKey]domain.Cents, []domain.CellKey, error) {
	allowedFields := make(map[string]struct{}, len(session.fields))
	for _, field := range session.fields {
		allowedFields[field.Name] = struct{}{}
	}
	allowedStores := make(map[string]struct{}, len(session.storeIDs))
	for _, id := range session.storeIDs {
		allowedStores[id] = struct{}{}
	}

	values := make(map[domain.CellKey]domain.Cents, len(cells))
	order := make([]domain.CellKey, 0, len(cells))

	for _, cell := range cells {
		key := cell.CellKey
		if key.Kind == "" {
			key.Kind = session.kind
		}
		if key.Kind != session.kind {
			return nil, nil, newError(ErrInvalidKind, string(key.Kind))
		}
		if _, err := validateCellKey(key); err != nil {
			return nil, nil, err
		}
		if _, ok := allowedFields[key.Field]; !ok {
			return nil, nil, newError(ErrInvalidField, key.Field)
		}
		if key.StoreID != "" {
			if _, ok := active[key.StoreID]; !ok {
				return nil, nil, newError(ErrStoreNotFound, key.StoreID)
			}
			if _, ok := allowedStores[key.StoreID]; !ok {
				return nil, nil, newError(ErrInvalidStore, key.StoreID)
			}
			if !claims.CanAccessStore(key.StoreID) {
				return nil, nil, newError(ErrStoreForbidden, key.StoreID)
			}
		}
		if _, ok := known[key.EntityID]; !ok {
			return nil, nil, newError(ErrEntityNotFound, key.EntityID)
		}
		if session.selection.Len() > 0 && !session.selection.Contains(key.EntityID) {
			return nil, nil, newError(ErrEntityNotFound, key.EntityID+" fora da seleção")
		}
		if err := validateAmount(cell.Amount); err != nil {
			return nil, nil, err
		}

		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = currency.ParseInputToCents(cell.Amount)
	}

	return values, order, nil
}

func (s *Service) finishApply(session *Session, applied int, err error) (*domain.BulkApplyResponse, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	s.sessions.touch(session)
	session.preview = nil

	if err != nil {
		session.state = domain.SessionFailed
		session.lastError = err.Error()
		return nil, err
	}

	session.state = domain.SessionCommitted
	session.lastError = ""

	return &domain.BulkApplyResponse{
		SessionID:    session.id,
		State:        session.state,
		AppliedCells: applied,
		Message:      "Preços atualizados com sucesso",
	}, nil
}

// Dismiss fecha o editor; não é possível enquanto a aplicação está em andamento
func (s *Service) Dismiss(ctx context.Context, claims *domain.Claims, sessionID string) error {
	session, err := s.sessions.Get(sessionID, claims.UserID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	err = session.editable()
	session.mu.Unlock()
	if err != nil {
		return err
	}

	s.sessions.Remove(sessionID)
	log.ForContext(ctx).Infof("Sessão de edição em massa %s descartada", sessionID)
	return nil
}

func (s *Service) ExpireSessions(ttl time.Duration) int {
	return s.sessions.Expire(ttl)
}

func (s *Service) compute(ctx context.Context, kind domain.EntityKind, ids []string, fields []domain.FieldSpec, storeIDs []string, adj Adjustment) ([]domain.PriceChange, error) {
	var changes []domain.PriceChange
	err := s.collection.Read(ctx, kind, func(lookup LookupFunc) {
		changes = ComputeChanges(kind, ids, fields, storeIDs, adj, lookup)
	})
	if err != nil {
		return nil, NewAdjustError(err, apiErrors.ErrDatabaseOperation, "Erro ao carregar preços")
	}
	return changes, nil
}

// resolveFields valida os campos pedidos; lista vazia seleciona todos os campos do tipo
func resolveFields(kind domain.EntityKind, names []string) ([]domain.FieldSpec, error) {
	if len(names) == 0 {
		return append([]domain.FieldSpec{}, domain.FieldRegistry[kind]...), nil
	}

	fields := make([]domain.FieldSpec, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		field, ok := domain.LookupField(kind, name)
		if !ok {
			return nil, newError(ErrInvalidField, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, field)
	}
	return fields, nil
}

// resolveStores valida as lojas pedidas; lista vazia usa todas as lojas ativas acessíveis
func resolveStores(claims *domain.Claims, active map[string]*domain.Store, requested []string, required bool) ([]string, error) {
	storeIDs := make([]string, 0, len(requested))

	if len(requested) == 0 {
		for id := range active {
			if claims.CanAccessStore(id) {
				storeIDs = append(storeIDs, id)
			}
		}
	} else {
		seen := make(map[string]bool)
		for _, id := range requested {
			if seen[id] {
				continue
			}
			seen[id] = true
			if _, ok := active[id]; !ok {
				return nil, newError(ErrStoreNotFound, id)
			}
			if !claims.CanAccessStore(id) {
				return nil, newError(ErrStoreForbidden, id)
			}
			storeIDs = append(storeIDs, id)
		}
	}

	if required && len(storeIDs) == 0 {
		return nil, newError(ErrNoStores, "")
	}

	sort.Strings(storeIDs)
	return storeIDs, nil
}

func needsStores(fields []domain.FieldSpec) bool {
	for _, field := range fields {
		if field.StoreScoped {
			return true
		}
	}
	return false
}

func hasGlobalField(fields []domain.FieldSpec) bool {
	for _, field := range fields {
		if !field.StoreScoped {
			return true
		}
	}
	return false
}

// activeOnly mantém apenas as lojas que continuam ativas
func activeOnly(active map[string]*domain.Store, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := active[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
