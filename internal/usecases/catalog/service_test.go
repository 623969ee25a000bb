package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/memory"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/adjusting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
)

var admin = &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}

func newSeededService(t *testing.T) (*Service, *adjusting.Service) {
	t.Helper()

	store, err := memory.NewSeeded("Senha@Forte1", true)
	require.NoError(t, err)

	prices := adjusting.NewService(store, store, store)
	return NewService(store, store, prices), prices
}

func apiCode(t *testing.T, err error) string {
	t.Helper()

	var coded apiErrors.CodedError
	require.True(t, errors.As(err, &coded), "erro sem código: %v", err)
	return coded.APICode()
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestService_Lojas(t *testing.T) {
	ctx := context.Background()
	service, _ := newSeededService(t)

	active, err := service.ListStores(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := service.ListStores(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	created, err := service.CreateStore(ctx, &domain.CreateStoreRequest{Name: "  Loja Praia  "})
	require.NoError(t, err)
	assert.Equal(t, "Loja Praia", created.Name)
	assert.True(t, created.Active)

	_, err = service.CreateStore(ctx, &domain.CreateStoreRequest{Name: "loja centro"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = service.CreateStore(ctx, &domain.CreateStoreRequest{Name: " "})
	assert.Equal(t, apiErrors.ErrMissingRequiredData, apiCode(t, err))

	updated, err := service.UpdateStore(ctx, &domain.UpdateStoreRequest{ID: "lj0003", Active: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Active)

	_, err = service.UpdateStore(ctx, &domain.UpdateStoreRequest{ID: "nada", Name: strPtr("X")})
	assert.Equal(t, apiErrors.ErrNotFound, apiCode(t, err))
}

func TestService_CategoriasESubcategorias(t *testing.T) {
	ctx := context.Background()
	service, _ := newSeededService(t)

	_, err := service.CreateCategory(ctx, &domain.CreateCategoryRequest{Name: "smartphones"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	category, err := service.CreateCategory(ctx, &domain.CreateCategoryRequest{Name: "Acessórios"})
	require.NoError(t, err)

	sub, err := service.CreateSubcategory(ctx, &domain.CreateSubcategoryRequest{CategoryID: category.ID, Name: "Capas"})
	require.NoError(t, err)
	assert.Equal(t, category.ID, sub.CategoryID)

	_, err = service.CreateSubcategory(ctx, &domain.CreateSubcategoryRequest{CategoryID: "inexistente", Name: "Capas"})
	assert.ErrorIs(t, err, ErrNotFound)

	subs, err := service.ListSubcategories(ctx, "ct0001")
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestService_ListPhoneModels(t *testing.T) {
	ctx := context.Background()
	service, _ := newSeededService(t)

	t.Run("Filtro por texto sem acento", func(t *testing.T) {
		models, err := service.ListPhoneModels(ctx, domain.SelectionFilter{Text: "galaxy"})
		require.NoError(t, err)
		require.Len(t, models, 1)
		assert.Equal(t, "md0003", models[0].ID)
		assert.Len(t, models[0].Prices, 2, "custo e preço na lj0001")
	})

	t.Run("Filtro por categoria", func(t *testing.T) {
		models, err := service.ListPhoneModels(ctx, domain.SelectionFilter{CategoryID: "ct0002"})
		require.NoError(t, err)
		require.Len(t, models, 1)
		assert.Equal(t, "md0004", models[0].ID)
	})

	t.Run("Status inválido", func(t *testing.T) {
		_, err := service.ListPhoneModels(ctx, domain.SelectionFilter{Status: "quase"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("Preços de loja inativa ficam de fora", func(t *testing.T) {
		model, err := service.GetPhoneModel(ctx, "md0002")
		require.NoError(t, err)
		for _, cell := range model.Prices {
			assert.NotEqual(t, "lj0003", cell.StoreID)
		}
		assert.Len(t, model.Prices, 3)
	})
}

func TestService_CreatePhoneModel(t *testing.T) {
	ctx := context.Background()

	t.Run("Grava modelo com preços iniciais", func(t *testing.T) {
		service, prices := newSeededService(t)

		view, err := service.CreatePhoneModel(ctx, admin, &domain.CreatePhoneModelRequest{
			Name: "iPhone 15", Brand: "Apple", Storage: "128GB", CategoryID: "ct0001", SubcategoryID: "sc0001",
			Prices: []domain.InitialPrice{
				{Field: domain.FieldPrice, StoreID: "lj0001", Amount: "R$ 5.499,00"},
				{Field: domain.FieldCost, Amount: "4.100"},
			},
		})
		require.NoError(t, err)
		assert.Len(t, view.Prices, 2)

		cents, ok, err := prices.Lookup(ctx, domain.CellKey{Kind: domain.KindPhoneModel, EntityID: view.ID, Field: domain.FieldPrice, StoreID: "lj0001"})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domain.Cents(549900), cents)
	})

	tests := []struct {
		name    string
		prices  []domain.InitialPrice
		wantErr error
	}{
		{name: "Valor negativo", prices: []domain.InitialPrice{{Field: domain.FieldPrice, StoreID: "lj0001", Amount: "-10"}}, wantErr: ErrNegativeValue},
		{name: "Valor sem dígitos", prices: []domain.InitialPrice{{Field: domain.FieldPrice, StoreID: "lj0001", Amount: "abc"}}, wantErr: ErrInvalidAmount},
		{name: "Loja inativa", prices: []domain.InitialPrice{{Field: domain.FieldPrice, StoreID: "lj0003", Amount: "10"}}, wantErr: ErrNotFound},
		{name: "Campo inexistente", prices: []domain.InitialPrice{{Field: "discount", Amount: "10"}}, wantErr: ErrInvalidRequest},
		{name: "Custo com loja", prices: []domain.InitialPrice{{Field: domain.FieldCost, StoreID: "lj0001", Amount: "10"}}, wantErr: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newSeededService(t)

			_, err := service.CreatePhoneModel(ctx, admin, &domain.CreatePhoneModelRequest{
				Name: "Moto G", Brand: "Motorola", CategoryID: "ct0001", SubcategoryID: "sc0001", Prices: tt.prices,
			})
			assert.ErrorIs(t, err, tt.wantErr)

			models, err := service.ListPhoneModels(ctx, domain.SelectionFilter{Text: "moto"})
			require.NoError(t, err)
			assert.Empty(t, models, "nada é gravado quando um valor é recusado")
		})
	}

	t.Run("Subcategoria de outra categoria", func(t *testing.T) {
		service, _ := newSeededService(t)

		_, err := service.CreatePhoneModel(ctx, admin, &domain.CreatePhoneModelRequest{
			Name: "Moto G", Brand: "Motorola", CategoryID: "ct0002", SubcategoryID: "sc0001",
		})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestService_CreateTradeInDevice(t *testing.T) {
	ctx := context.Background()
	service, _ := newSeededService(t)

	_, err := service.CreateTradeInDevice(ctx, admin, &domain.CreateTradeInDeviceRequest{
		Name: "iPad usado", SubcategoryID: "sc0003",
		Prices: []domain.InitialPrice{
			{Field: domain.FieldMinValue, StoreID: "lj0002", Amount: "900"},
			{Field: domain.FieldMaxValue, StoreID: "lj0002", Amount: "500"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	view, err := service.CreateTradeInDevice(ctx, admin, &domain.CreateTradeInDeviceRequest{
		ModelID: "md0004", Name: "iPad usado", SubcategoryID: "sc0003",
		Prices: []domain.InitialPrice{
			{Field: domain.FieldMinValue, StoreID: "lj0002", Amount: "500"},
			{Field: domain.FieldMaxValue, StoreID: "lj0002", Amount: "900"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, view.Prices, 2)

	updated, err := service.UpdateTradeInDevice(ctx, &domain.UpdateTradeInDeviceRequest{ID: view.ID, Active: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	inactive, err := service.ListTradeInDevices(ctx, domain.SelectionFilter{Status: "inactive"})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, view.ID, inactive[0].ID)
}

func TestService_StubsEmDesenvolvimento(t *testing.T) {
	ctx := context.Background()
	service, _ := newSeededService(t)

	for name, err := range map[string]error{
		"TogglePhoneModel": service.TogglePhoneModel(ctx, "md0001"),
		"DeletePhoneModel": service.DeletePhoneModel(ctx, "md0001"),
		"UpdateDamageType": service.UpdateDamageType(ctx, &domain.UpdateDamageTypeRequest{ID: "dm0001"}),
		"DeleteDamageType": service.DeleteDamageType(ctx, "dm0001"),
	} {
		assert.ErrorIs(t, err, ErrNotImplemented, name)
		assert.Equal(t, apiErrors.ErrNotImplemented, apiCode(t, err), name)
	}
}

func TestService_ListDamageMatrix(t *testing.T) {
	ctx := context.Background()
	service, _ := newSeededService(t)

	rows, err := service.ListDamageMatrix(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 9, "3 subcategorias x 3 tipos de avaria")

	discounts := make(map[string]domain.Cents)
	for _, row := range rows {
		discounts[row.SelectionID()] = row.DiscountCents
	}
	assert.Equal(t, domain.Cents(60000), discounts[domain.DamageMatrixEntityID("sc0001", "dm0001")])
	assert.Equal(t, domain.Cents(0), discounts[domain.DamageMatrixEntityID("sc0003", "dm0001")])

	_, err = service.CreateDamageType(ctx, &domain.CreateDamageTypeRequest{Name: "tela trincada"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Maquininhas(t *testing.T) {
	ctx := context.Background()
	service, _ := newSeededService(t)

	machine, err := service.CreateCardMachine(ctx, &domain.CreateCardMachineRequest{
		Name: "Cielo",
		Rates: []domain.InstallmentRate{
			{Installments: 12, RatePercent: decimal.RequireFromString("13.9")},
			{Installments: 1, RatePercent: decimal.RequireFromString("1.99")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, machine.Rates[0].Installments, "taxas ordenadas por parcelas")

	tests := []struct {
		name  string
		rates []domain.InstallmentRate
	}{
		{name: "Parcela zero", rates: []domain.InstallmentRate{{Installments: 0, RatePercent: decimal.NewFromInt(1)}}},
		{name: "Taxa negativa", rates: []domain.InstallmentRate{{Installments: 2, RatePercent: decimal.NewFromInt(-1)}}},
		{name: "Parcela repetida", rates: []domain.InstallmentRate{
			{Installments: 2, RatePercent: decimal.NewFromInt(3)},
			{Installments: 2, RatePercent: decimal.NewFromInt(4)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := tt.rates
			_, err := service.UpdateCardMachine(ctx, &domain.UpdateCardMachineRequest{ID: machine.ID, Rates: &rates})
			assert.ErrorIs(t, err, ErrInvalidRate)
		})
	}
}

func TestService_ErroDeBanco(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stores := mocks.NewMockStoreRepository(ctrl)
	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	stores.EXPECT().ListStores(gomock.Any()).Return(nil, errors.New("conexão recusada"))

	service := NewService(catalogRepo, stores, nil)

	_, err := service.ListStores(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, apiCode(t, err))
}
