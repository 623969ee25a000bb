package adjusting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

func priceKey(entityID, storeID string) domain.CellKey {
	return domain.CellKey{Kind: domain.KindPhoneModel, EntityID: entityID, Field: domain.FieldPrice, StoreID: storeID}
}

func TestCollection_CarregaUmaVezPorTipo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mocks.NewMockPriceRepository(ctrl)
	repo.EXPECT().
		ListCells(gomock.Any(), domain.KindPhoneModel).
		Return([]*domain.PriceCell{{CellKey: priceKey("m1", "s1"), Cents: 1000}}, nil).
		Times(1)

	collection := NewCollection(repo)

	cents, ok, err := collection.Lookup(ctx, priceKey("m1", "s1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.Cents(1000), cents)

	_, ok, err = collection.Lookup(ctx, priceKey("m2", "s1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollection_ErroAoCarregar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPriceRepository(ctrl)
	repo.EXPECT().ListCells(gomock.Any(), domain.KindTradeIn).Return(nil, errors.New("conexão recusada")).Times(2)

	collection := NewCollection(repo)

	_, err := collection.Cells(context.Background(), domain.KindTradeIn)
	assert.Error(t, err)

	// falha não marca o tipo como carregado
	_, err = collection.Cells(context.Background(), domain.KindTradeIn)
	assert.Error(t, err)
}

func TestCollection_ReplaceERestore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mocks.NewMockPriceRepository(ctrl)
	repo.EXPECT().ListCells(gomock.Any(), domain.KindPhoneModel).Return([]*domain.PriceCell{
		{CellKey: priceKey("m1", "s1"), Cents: 1000},
		{CellKey: priceKey("m2", "s1"), Cents: 2000},
	}, nil)

	collection := NewCollection(repo)
	require.NoError(t, collection.ensureLoaded(ctx, domain.KindPhoneModel))

	changes := []domain.PriceChange{
		{CellKey: priceKey("m1", "s1"), After: 1100},
		{CellKey: priceKey("m3", "s1"), After: 500},
	}
	snap := collection.replace(changes)

	assert.Equal(t, domain.Cents(1000), changes[0].Before)
	assert.True(t, changes[0].Existed)
	assert.False(t, changes[1].Existed)

	cents, _, _ := collection.Lookup(ctx, priceKey("m1", "s1"))
	assert.Equal(t, domain.Cents(1100), cents)

	collection.restore(snap)

	cells, err := collection.Cells(ctx, domain.KindPhoneModel)
	require.NoError(t, err)
	assert.Equal(t, []domain.PriceCell{
		{CellKey: priceKey("m1", "s1"), Cents: 1000},
		{CellKey: priceKey("m2", "s1"), Cents: 2000},
	}, cells, "célula criada pelo lote some e a alterada volta ao valor anterior")
}

func TestCollection_RestoreMantemGravacaoPosterior(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mocks.NewMockPriceRepository(ctrl)
	repo.EXPECT().ListCells(gomock.Any(), domain.KindPhoneModel).Return([]*domain.PriceCell{
		{CellKey: priceKey("m1", "s1"), Cents: 1000},
	}, nil)

	collection := NewCollection(repo)
	require.NoError(t, collection.ensureLoaded(ctx, domain.KindPhoneModel))

	first := collection.replace([]domain.PriceChange{{CellKey: priceKey("m1", "s1"), After: 1100}})
	collection.replace([]domain.PriceChange{{CellKey: priceKey("m1", "s1"), After: 1500}})

	collection.restore(first)

	cents, _, _ := collection.Lookup(ctx, priceKey("m1", "s1"))
	assert.Equal(t, domain.Cents(1500), cents, "última submissão vence")
}

func TestCollection_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	repo := mocks.NewMockPriceRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().ListCells(gomock.Any(), domain.KindPhoneModel).Return([]*domain.PriceCell{
			{CellKey: priceKey("m1", "s1"), Cents: 1000},
		}, nil),
		repo.EXPECT().ListCells(gomock.Any(), domain.KindPhoneModel).Return([]*domain.PriceCell{
			{CellKey: priceKey("m1", "s1"), Cents: 7000},
		}, nil),
	)

	collection := NewCollection(repo)

	cents, _, err := collection.Lookup(ctx, priceKey("m1", "s1"))
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(1000), cents)

	collection.Invalidate()

	cents, _, err = collection.Lookup(ctx, priceKey("m1", "s1"))
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(7000), cents)
}
