package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

func TestStore_ApplyChangesGravaHistorico(t *testing.T) {
	ctx := context.Background()
	store, err := NewSeeded("Senha@Forte1", true)
	require.NoError(t, err)

	key := domain.CellKey{Kind: domain.KindPhoneModel, EntityID: "md0001", Field: domain.FieldPrice, StoreID: "lj0001"}

	for _, after := range []domain.Cents{450000, 460000, 470000} {
		require.NoError(t, store.ApplyChanges(ctx, []domain.PriceChange{
			{CellKey: key, Before: after - 10000, After: after, Operation: domain.OperationManual},
		}))
	}

	cells, err := store.ListCells(ctx, domain.KindPhoneModel)
	require.NoError(t, err)
	var found bool
	for _, cell := range cells {
		if cell.CellKey == key {
			found = true
			assert.Equal(t, domain.Cents(470000), cell.Cents)
		}
	}
	assert.True(t, found)

	history, err := store.ListHistory(ctx, key, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.Cents(470000), history[0].NewCents, "mais recente primeiro")
	assert.Equal(t, domain.Cents(460000), history[1].NewCents)
	assert.NotEmpty(t, history[0].ID)
}

func TestStore_ApplyChangesContextoCancelado(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.ApplyChanges(ctx, []domain.PriceChange{
		{CellKey: domain.CellKey{Kind: domain.KindPhoneModel, EntityID: "x", Field: domain.FieldCost}, After: 1},
	})
	assert.ErrorIs(t, err, context.Canceled)

	cells, _ := store.ListCells(context.Background(), "")
	assert.Empty(t, cells)
}

func TestStore_Usuarios(t *testing.T) {
	ctx := context.Background()
	store := New()

	permissions := []domain.Permission{domain.PermissionPricesWrite}
	first, err := store.CreateUser(ctx, &domain.User{Name: "Ana", Login: "ana", Email: "ana@loja.local", Permissions: permissions})
	require.NoError(t, err)
	second, err := store.CreateUser(ctx, &domain.User{Name: "Bruno", Login: "bruno", Email: "bruno@loja.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	// alterar o slice do chamador não altera o armazenado
	permissions[0] = domain.PermissionUsersManage
	stored, err := store.GetUserByLogin(ctx, "ANA")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []domain.Permission{domain.PermissionPricesWrite}, stored.Permissions)

	require.NoError(t, store.UpdateUser(ctx, &domain.User{ID: 2, Deleted: true}))
	missing, err := store.GetUserByEmail(ctx, "bruno@loja.local")
	require.NoError(t, err)
	assert.Nil(t, missing, "usuário excluído não é encontrado")

	users, err := store.ListUser(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStore_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	source, err := NewSeeded("Senha@Forte1", true)
	require.NoError(t, err)

	data, err := source.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Stores, 3)
	assert.NotEmpty(t, data.PriceCells)
	assert.NotEmpty(t, data.Users)

	target := New()
	require.NoError(t, target.Restore(ctx, data))

	stores, err := target.ListStores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 3)

	cells, err := target.ListCells(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cells, len(data.PriceCells))

	model, err := target.GetPhoneModel(ctx, "md0001")
	require.NoError(t, err)
	require.NotNil(t, model)

	missing, err := target.GetStore(ctx, "lj9999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
