package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "user-1", "prefs")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "user-1", "prefs", []byte(`{"theme":"dark"}`), "aba-1"))
	require.NoError(t, store.Set(ctx, "user-1", "prefs", []byte(`{"theme":"light"}`), "aba-2"))

	val, found, err := store.Get(ctx, "user-1", "prefs")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"theme":"light"}`, string(val), "último escritor vence")

	_, found, err = store.Get(ctx, "user-2", "prefs")
	require.NoError(t, err)
	assert.False(t, found, "namespaces são isolados")

	require.NoError(t, store.Delete(ctx, "user-1", "prefs", "aba-1"))
	_, found, err = store.Get(ctx, "user-1", "prefs")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_ChaveInvalida(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	tests := []struct {
		name      string
		namespace string
		key       string
	}{
		{name: "namespace vazio", namespace: "", key: "prefs"},
		{name: "chave vazia", namespace: "user-1", key: ""},
		{name: "chave com separador", namespace: "user-1", key: "a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.Set(ctx, tt.namespace, tt.key, []byte("1"), ""), ErrInvalidKey)
			_, _, err := store.Get(ctx, tt.namespace, tt.key)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestMemoryStore_Subscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewMemoryStore()

	changes, err := store.Subscribe(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "user-2", "prefs", []byte("1"), "outro"))
	require.NoError(t, store.Set(ctx, "user-1", "prefs", []byte("2"), "aba-1"))
	require.NoError(t, store.Delete(ctx, "user-1", "recent_searches", "aba-2"))

	first := receive(t, changes)
	assert.Equal(t, "prefs", first.Key)
	assert.Equal(t, []byte("2"), first.Value)
	assert.Equal(t, "aba-1", first.Origin)
	assert.False(t, first.Deleted)

	second := receive(t, changes)
	assert.Equal(t, "recent_searches", second.Key)
	assert.True(t, second.Deleted)

	cancel()
	select {
	case _, ok := <-changes:
		assert.False(t, ok, "canal deve ser fechado ao cancelar o contexto")
	case <-time.After(time.Second):
		t.Fatal("canal não foi fechado")
	}
}

func TestMemoryStore_ValorNaoCompartilhaMemoria(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "user-1", "prefs", value, ""))
	value[0] = 'x'

	got, _, err := store.Get(ctx, "user-1", "prefs")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func receive(t *testing.T, ch <-chan domain.PreferenceChange) domain.PreferenceChange {
	t.Helper()
	select {
	case change := <-ch:
		return change
	case <-time.After(time.Second):
		t.Fatal("nenhuma alteração recebida")
	}
	return domain.PreferenceChange{}
}
