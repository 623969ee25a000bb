package adjusting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/memory"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

var admin = &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}

func newSeededService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store, err := memory.NewSeeded("Senha@Forte1", true)
	require.NoError(t, err)
	return NewService(store, store, store), store
}

func lookup(t *testing.T, svc *Service, key domain.CellKey) domain.Cents {
	t.Helper()
	cents, ok, err := svc.Lookup(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "célula %s deveria existir", key)
	return cents
}

func openPercentageSession(t *testing.T, svc *Service, ids ...string) string {
	t.Helper()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionConfiguring, session.State)

	_, err = svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{
		Operation: domain.OperationPercentage,
		Fields:    []string{domain.FieldPrice},
		StoreIDs:  []string{"lj0001", "lj0002"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateSelection(ctx, admin, session.ID, &domain.UpdateSelectionRequest{
		Action: domain.SelectionSelect,
		IDs:    ids,
	})
	require.NoError(t, err)

	return session.ID
}

func TestService_FluxoPercentual(t *testing.T) {
	ctx := context.Background()
	svc, store := newSeededService(t)

	sessionID := openPercentageSession(t, svc, "md0001", "md0003")

	preview, err := svc.Preview(ctx, admin, sessionID, &domain.PreviewBulkRequest{Magnitude: "10", Direction: domain.DirectionIncrease})
	require.NoError(t, err)
	assert.Equal(t, 2, preview.AffectedEntities)
	assert.Equal(t, 3, preview.AffectedCells, "md0003 não tem preço na lj0002")
	require.Len(t, preview.Stores, 2)
	assert.Equal(t, "lj0001", preview.Stores[0].ID)

	// prévia não grava nada
	assert.Equal(t, domain.Cents(429900), lookup(t, svc, priceKey("md0001", "lj0001")))

	result, err := svc.Apply(ctx, admin, sessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCommitted, result.State)
	assert.Equal(t, 3, result.AppliedCells)

	assert.Equal(t, domain.Cents(472890), lookup(t, svc, priceKey("md0001", "lj0001")))
	assert.Equal(t, domain.Cents(483890), lookup(t, svc, priceKey("md0001", "lj0002")))
	assert.Equal(t, domain.Cents(439890), lookup(t, svc, priceKey("md0003", "lj0001")))

	// itens e lojas fora da seleção permanecem iguais
	assert.Equal(t, domain.Cents(699900), lookup(t, svc, priceKey("md0002", "lj0001")))
	assert.Equal(t, domain.Cents(320000), lookup(t, svc, domain.CellKey{Kind: domain.KindPhoneModel, EntityID: "md0001", Field: domain.FieldCost}))
	_, exists, err := svc.Lookup(ctx, priceKey("md0003", "lj0002"))
	require.NoError(t, err)
	assert.False(t, exists, "célula ausente não é criada")

	// persistido com histórico
	cells, err := store.ListCells(ctx, domain.KindPhoneModel)
	require.NoError(t, err)
	for _, cell := range cells {
		if cell.CellKey == priceKey("md0001", "lj0001") {
			assert.Equal(t, domain.Cents(472890), cell.Cents)
		}
	}

	history, err := svc.History(ctx, priceKey("md0001", "lj0001"), 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.Cents(429900), history[0].OldCents)
	assert.Equal(t, domain.Cents(472890), history[0].NewCents)
	assert.Equal(t, domain.OperationPercentage, history[0].Operation)
	assert.Equal(t, 1, history[0].UserID)

	session, err := svc.GetSession(ctx, admin, sessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCommitted, session.State)
	assert.Nil(t, session.Preview)
}

func TestService_FluxoValorFixoComReducao(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	session, err := svc.CreateSession(ctx, admin, domain.KindTradeIn)
	require.NoError(t, err)

	_, err = svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{
		Operation: domain.OperationFixed,
		Fields:    []string{domain.FieldMinValue},
		StoreIDs:  []string{"lj0001"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateSelection(ctx, admin, session.ID, &domain.UpdateSelectionRequest{Action: domain.SelectionSelectAll})
	require.NoError(t, err)

	preview, err := svc.Preview(ctx, admin, session.ID, &domain.PreviewBulkRequest{Magnitude: "1.300", Direction: domain.DirectionDecrease})
	require.NoError(t, err)
	assert.Equal(t, 2, preview.AffectedCells)

	_, err = svc.Apply(ctx, admin, session.ID)
	require.NoError(t, err)

	minKey := func(id string) domain.CellKey {
		return domain.CellKey{Kind: domain.KindTradeIn, EntityID: id, Field: domain.FieldMinValue, StoreID: "lj0001"}
	}
	assert.Equal(t, domain.Cents(20000), lookup(t, svc, minKey("tr0001")))
	assert.Equal(t, domain.Cents(0), lookup(t, svc, minKey("tr0002")), "nunca abaixo de zero")
	assert.Equal(t, domain.Cents(140000), lookup(t, svc, domain.CellKey{Kind: domain.KindTradeIn, EntityID: "tr0001", Field: domain.FieldMinValue, StoreID: "lj0002"}))
}

func TestService_TransicoesInvalidas(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	t.Run("Aplicar sem prévia", func(t *testing.T) {
		sessionID := openPercentageSession(t, svc, "md0001")
		_, err := svc.Apply(ctx, admin, sessionID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Prévia sem seleção", func(t *testing.T) {
		sessionID := openPercentageSession(t, svc)
		_, err := svc.Preview(ctx, admin, sessionID, &domain.PreviewBulkRequest{Magnitude: "10"})
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("Alterar seleção invalida a prévia", func(t *testing.T) {
		sessionID := openPercentageSession(t, svc, "md0001")
		_, err := svc.Preview(ctx, admin, sessionID, &domain.PreviewBulkRequest{Magnitude: "10"})
		require.NoError(t, err)

		session, err := svc.UpdateSelection(ctx, admin, sessionID, &domain.UpdateSelectionRequest{Action: domain.SelectionSelect, IDs: []string{"md0002"}})
		require.NoError(t, err)
		assert.Equal(t, domain.SessionConfiguring, session.State)
		assert.Nil(t, session.Preview)

		_, err = svc.Apply(ctx, admin, sessionID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Prévia em sessão personalizada", func(t *testing.T) {
		session, err := svc.CreateSession(ctx, admin, domain.KindDamageMatrix)
		require.NoError(t, err)
		_, err = svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{Operation: domain.OperationCustom})
		require.NoError(t, err)

		_, err = svc.Preview(ctx, admin, session.ID, &domain.PreviewBulkRequest{Magnitude: "10"})
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Sessão de outro usuário", func(t *testing.T) {
		sessionID := openPercentageSession(t, svc, "md0001")
		other := &domain.Claims{UserID: 99, UserRoleID: domain.RoleAdmin}
		_, err := svc.GetSession(ctx, other, sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Campo inexistente", func(t *testing.T) {
		session, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
		require.NoError(t, err)
		_, err = svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{Operation: domain.OperationFixed, Fields: []string{domain.FieldDiscount}})
		assert.ErrorIs(t, err, ErrInvalidField)
	})

	t.Run("Loja inativa", func(t *testing.T) {
		session, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
		require.NoError(t, err)
		_, err = svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{Operation: domain.OperationFixed, StoreIDs: []string{"lj0003"}})
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})

	t.Run("Usuário sem acesso à loja", func(t *testing.T) {
		operator := &domain.Claims{UserID: 7, UserRoleID: domain.RoleOperator, UserStoreIDs: []string{"lj0001"}}
		session, err := svc.CreateSession(ctx, operator, domain.KindPhoneModel)
		require.NoError(t, err)

		_, err = svc.Configure(ctx, operator, session.ID, &domain.ConfigureBulkSessionRequest{Operation: domain.OperationFixed, StoreIDs: []string{"lj0002"}})
		assert.ErrorIs(t, err, ErrStoreForbidden)

		configured, err := svc.Configure(ctx, operator, session.ID, &domain.ConfigureBulkSessionRequest{Operation: domain.OperationFixed})
		require.NoError(t, err)
		assert.Equal(t, []string{"lj0001"}, configured.StoreIDs, "sem lojas informadas usa as lojas do usuário")
	})

	t.Run("Tipo inválido", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, admin, "acessorio")
		assert.ErrorIs(t, err, ErrInvalidKind)
	})
}

func TestService_SelecionarTodosComFiltro(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	session, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
	require.NoError(t, err)

	updated, err := svc.UpdateSelection(ctx, admin, session.ID, &domain.UpdateSelectionRequest{
		Action: domain.SelectionSelectAll,
		Filter: domain.SelectionFilter{Text: "iphone"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"md0001", "md0002"}, updated.SelectedIDs)

	updated, err = svc.UpdateSelection(ctx, admin, session.ID, &domain.UpdateSelectionRequest{Action: domain.SelectionSetFilter})
	require.NoError(t, err)
	assert.Equal(t, domain.SelectionFilter{}, updated.Filter)
	assert.Equal(t, []string{"md0001", "md0002"}, updated.SelectedIDs, "limpar o filtro não altera a seleção")

	items, err := svc.SessionItems(ctx, admin, session.ID)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	selected := 0
	for _, item := range items {
		if item.Selected {
			selected++
		}
	}
	assert.Equal(t, 2, selected)

	_, err = svc.UpdateSelection(ctx, admin, session.ID, &domain.UpdateSelectionRequest{Action: domain.SelectionSelect, IDs: []string{"nao-existe"}})
	assert.ErrorIs(t, err, ErrEntityNotFound)

	_, err = svc.UpdateSelection(ctx, admin, session.ID, &domain.UpdateSelectionRequest{Action: domain.SelectionSetFilter, Filter: domain.SelectionFilter{Status: "arquivado"}})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestService_PrecoPersonalizado(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	session, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
	require.NoError(t, err)
	configured, err := svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{
		Operation: domain.OperationCustom,
		Fields:    []string{domain.FieldPrice},
		StoreIDs:  []string{"lj0001"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCustomEditing, configured.State)

	t.Run("Valor negativo aborta sem alterar nada", func(t *testing.T) {
		_, err := svc.ApplyCustom(ctx, admin, session.ID, &domain.ApplyCustomRequest{Cells: []domain.CustomPriceInput{
			{CellKey: priceKey("md0001", "lj0001"), Amount: "4.000,00"},
			{CellKey: priceKey("md0003", "lj0001"), Amount: "-1"},
		}})
		assert.ErrorIs(t, err, ErrNegativeValue)
		assert.Equal(t, domain.Cents(429900), lookup(t, svc, priceKey("md0001", "lj0001")))
	})

	t.Run("Loja fora da sessão", func(t *testing.T) {
		_, err := svc.ApplyCustom(ctx, admin, session.ID, &domain.ApplyCustomRequest{Cells: []domain.CustomPriceInput{
			{CellKey: priceKey("md0001", "lj0002"), Amount: "1"},
		}})
		assert.ErrorIs(t, err, ErrInvalidStore)
	})

	t.Run("Grava e cria células ausentes", func(t *testing.T) {
		result, err := svc.ApplyCustom(ctx, admin, session.ID, &domain.ApplyCustomRequest{Cells: []domain.CustomPriceInput{
			{CellKey: priceKey("md0001", "lj0001"), Amount: "4.000,00"},
			{CellKey: domain.CellKey{EntityID: "md0004", Field: domain.FieldPrice, StoreID: "lj0001"}, Amount: "3.500"},
			{CellKey: priceKey("md0003", "lj0001"), Amount: "3.999,00"},
		}})
		require.NoError(t, err)
		assert.Equal(t, 2, result.AppliedCells, "valor igual ao atual não gera alteração")

		assert.Equal(t, domain.Cents(400000), lookup(t, svc, priceKey("md0001", "lj0001")))
		assert.Equal(t, domain.Cents(350000), lookup(t, svc, priceKey("md0004", "lj0001")))
	})

	t.Run("Depois de gravar é preciso configurar de novo", func(t *testing.T) {
		_, err := svc.ApplyCustom(ctx, admin, session.ID, &domain.ApplyCustomRequest{Cells: []domain.CustomPriceInput{
			{CellKey: priceKey("md0001", "lj0001"), Amount: "1"},
		}})
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestService_RollbackQuandoPersistenciaFalha(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	prices := mocks.NewMockPriceRepository(ctrl)
	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	stores := mocks.NewMockStoreRepository(ctrl)

	original := []*domain.PriceCell{
		{CellKey: priceKey("m1", "s1"), Cents: 10000},
		{CellKey: priceKey("m1", "s2"), Cents: 20000},
		{CellKey: priceKey("m2", "s1"), Cents: 30000},
		{CellKey: priceKey("m3", "s1"), Cents: 40000},
	}

	stores.EXPECT().ListStores(gomock.Any()).Return([]*domain.Store{
		{ID: "s1", Active: true},
		{ID: "s2", Active: true},
	}, nil).AnyTimes()
	catalogRepo.EXPECT().ListPhoneModels(gomock.Any()).Return([]*domain.PhoneModel{
		{ID: "m1", Active: true}, {ID: "m2", Active: true}, {ID: "m3", Active: true},
	}, nil).AnyTimes()
	prices.EXPECT().ListCells(gomock.Any(), domain.KindPhoneModel).Return(original, nil).Times(1)
	prices.EXPECT().
		ApplyChanges(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, changes []domain.PriceChange) error {
			assert.Len(t, changes, 3)
			return errors.New("timeout ao gravar")
		})

	svc := NewService(prices, catalogRepo, stores)

	session, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
	require.NoError(t, err)
	_, err = svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{Operation: domain.OperationFixed, Fields: []string{domain.FieldPrice}})
	require.NoError(t, err)
	_, err = svc.UpdateSelection(ctx, admin, session.ID, &domain.UpdateSelectionRequest{Action: domain.SelectionSelect, IDs: []string{"m1", "m2"}})
	require.NoError(t, err)
	_, err = svc.Preview(ctx, admin, session.ID, &domain.PreviewBulkRequest{Magnitude: "50"})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, admin, session.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistenceRejected)

	var adjustErr *AdjustError
	require.ErrorAs(t, err, &adjustErr)
	assert.Equal(t, "PRC_001", adjustErr.APICode())

	for _, cell := range original {
		assert.Equal(t, cell.Cents, lookup(t, svc, cell.CellKey), "célula %s restaurada", cell.CellKey)
	}

	current, err := svc.GetSession(ctx, admin, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionFailed, current.State)
	assert.NotEmpty(t, current.Error)
}

func TestService_UmaAplicacaoPorSessao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	prices := mocks.NewMockPriceRepository(ctrl)
	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	stores := mocks.NewMockStoreRepository(ctrl)

	stores.EXPECT().ListStores(gomock.Any()).Return([]*domain.Store{{ID: "s1", Active: true}}, nil).AnyTimes()
	catalogRepo.EXPECT().ListPhoneModels(gomock.Any()).Return([]*domain.PhoneModel{{ID: "m1", Active: true}}, nil).AnyTimes()
	prices.EXPECT().ListCells(gomock.Any(), domain.KindPhoneModel).Return([]*domain.PriceCell{
		{CellKey: priceKey("m1", "s1"), Cents: 10000},
	}, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	prices.EXPECT().
		ApplyChanges(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []domain.PriceChange) error {
			close(entered)
			<-release
			return nil
		})

	svc := NewService(prices, catalogRepo, stores)

	session, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
	require.NoError(t, err)
	_, err = svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{Operation: domain.OperationPercentage, Fields: []string{domain.FieldPrice}})
	require.NoError(t, err)
	_, err = svc.UpdateSelection(ctx, admin, session.ID, &domain.UpdateSelectionRequest{Action: domain.SelectionSelect, IDs: []string{"m1"}})
	require.NoError(t, err)
	_, err = svc.Preview(ctx, admin, session.ID, &domain.PreviewBulkRequest{Magnitude: "10"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Apply(ctx, admin, session.ID)
		assert.NoError(t, err)
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("aplicação não começou")
	}

	_, err = svc.Apply(ctx, admin, session.ID)
	assert.ErrorIs(t, err, ErrApplyInProgress)

	_, err = svc.Configure(ctx, admin, session.ID, &domain.ConfigureBulkSessionRequest{Operation: domain.OperationFixed})
	assert.ErrorIs(t, err, ErrApplyInProgress)

	assert.ErrorIs(t, svc.Dismiss(ctx, admin, session.ID), ErrApplyInProgress)

	_, err = svc.CreateSession(ctx, admin, domain.KindPhoneModel)
	assert.ErrorIs(t, err, ErrApplyInProgress, "não substitui sessão que está aplicando")

	assert.Equal(t, 0, svc.ExpireSessions(0), "sessão aplicando não expira")

	close(release)
	wg.Wait()

	current, err := svc.GetSession(ctx, admin, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCommitted, current.State)
	assert.Equal(t, domain.Cents(11000), lookup(t, svc, priceKey("m1", "s1")))
}

func TestService_CopiarEntreLojas(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	req := &domain.CopyPricesRequest{Kind: domain.KindPhoneModel, SourceStoreID: "lj0001", TargetStoreID: "lj0002"}

	preview, err := svc.CopyBetweenStores(ctx, admin, req)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	require.NotNil(t, preview)
	assert.False(t, preview.Applied)
	assert.Len(t, preview.Changes, 3)
	assert.Equal(t, domain.Cents(439900), lookup(t, svc, priceKey("md0001", "lj0002")), "sem confirmação nada muda")

	req.Confirm = true
	result, err := svc.CopyBetweenStores(ctx, admin, req)
	require.NoError(t, err)
	assert.True(t, result.Applied)

	assert.Equal(t, domain.Cents(429900), lookup(t, svc, priceKey("md0001", "lj0002")))
	assert.Equal(t, domain.Cents(699900), lookup(t, svc, priceKey("md0002", "lj0002")))
	assert.Equal(t, domain.Cents(399900), lookup(t, svc, priceKey("md0003", "lj0002")))
	assert.Equal(t, domain.Cents(319900), lookup(t, svc, priceKey("md0004", "lj0002")), "sem valor na origem o destino é mantido")
	assert.Equal(t, domain.Cents(320000), lookup(t, svc, domain.CellKey{Kind: domain.KindPhoneModel, EntityID: "md0001", Field: domain.FieldCost}))

	_, err = svc.CopyBetweenStores(ctx, admin, &domain.CopyPricesRequest{Kind: domain.KindPhoneModel, SourceStoreID: "lj0001", TargetStoreID: "lj0003", Confirm: true})
	assert.ErrorIs(t, err, ErrStoreNotFound)

	_, err = svc.CopyBetweenStores(ctx, admin, &domain.CopyPricesRequest{Kind: domain.KindPhoneModel, SourceStoreID: "lj0001", TargetStoreID: "lj0001", Confirm: true})
	assert.ErrorIs(t, err, ErrSameStore)
}

func TestService_UpdateCell(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	tests := []struct {
		name    string
		req     *domain.UpdateCellRequest
		want    domain.Cents
		wantErr error
	}{
		{
			name: "Valor com milhar e centavos",
			req:  &domain.UpdateCellRequest{CellKey: priceKey("md0001", "lj0001"), Amount: "R$ 4.199,90"},
			want: 419990,
		},
		{
			name: "Custo global",
			req:  &domain.UpdateCellRequest{CellKey: domain.CellKey{Kind: domain.KindPhoneModel, EntityID: "md0001", Field: domain.FieldCost}, Amount: "3300"},
			want: 330000,
		},
		{
			name: "Desconto da matriz ainda inexistente",
			req:  &domain.UpdateCellRequest{CellKey: domain.CellKey{Kind: domain.KindDamageMatrix, EntityID: "sc0003:dm0001", Field: domain.FieldDiscount}, Amount: "0"},
			want: 0,
		},
		{
			name:    "Valor negativo",
			req:     &domain.UpdateCellRequest{CellKey: priceKey("md0001", "lj0001"), Amount: "-5"},
			wantErr: ErrNegativeValue,
		},
		{
			name:    "Texto sem dígitos",
			req:     &domain.UpdateCellRequest{CellKey: priceKey("md0001", "lj0001"), Amount: "abc"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "Loja inativa",
			req:     &domain.UpdateCellRequest{CellKey: priceKey("md0002", "lj0003"), Amount: "1"},
			wantErr: ErrStoreNotFound,
		},
		{
			name:    "Item inexistente",
			req:     &domain.UpdateCellRequest{CellKey: priceKey("md9999", "lj0001"), Amount: "1"},
			wantErr: ErrEntityNotFound,
		},
		{
			name:    "Custo não aceita loja",
			req:     &domain.UpdateCellRequest{CellKey: domain.CellKey{Kind: domain.KindPhoneModel, EntityID: "md0001", Field: domain.FieldCost, StoreID: "lj0001"}, Amount: "1"},
			wantErr: ErrInvalidStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.UpdateCell(ctx, admin, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, view.Cents)
			assert.Equal(t, tt.want, lookup(t, svc, tt.req.CellKey))
			assert.NotEmpty(t, view.Display)
		})
	}
}

func TestService_ListCellsOmiteLojaInativa(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	views, err := svc.ListCells(ctx, domain.KindPhoneModel)
	require.NoError(t, err)

	for _, view := range views {
		assert.NotEqual(t, "lj0003", view.StoreID)
		if view.CellKey == priceKey("md0001", "lj0001") {
			assert.Equal(t, "R$ 4.299,00", view.Display)
		}
	}

	_, err = svc.ListCells(ctx, "acessorio")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestService_DismissEExpiracao(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	sessionID := openPercentageSession(t, svc, "md0001")
	require.NoError(t, svc.Dismiss(ctx, admin, sessionID))
	_, err := svc.GetSession(ctx, admin, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sessionID = openPercentageSession(t, svc, "md0001")
	svc.sessions.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.Equal(t, 1, svc.ExpireSessions(30*time.Minute))
	_, err = svc.GetSession(ctx, admin, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_NovaSessaoSubstituiAnterior(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSeededService(t)

	first, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
	require.NoError(t, err)
	second, err := svc.CreateSession(ctx, admin, domain.KindPhoneModel)
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, admin, first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.GetSession(ctx, admin, second.ID)
	assert.NoError(t, err)

	_, err = svc.CreateSession(ctx, admin, domain.KindTradeIn)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.sessions.Len(), "uma sessão por tipo")
}
