package backup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/memory"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/adjusting"
)

const version = "1.0.0"

func seededExport(t *testing.T) []byte {
	t.Helper()

	store, err := memory.NewSeeded("Senha@Forte1", true)
	require.NoError(t, err)

	raw, err := NewService(store, nil, version).ExportJSON(context.Background())
	require.NoError(t, err)
	return raw
}

// mutate decodifica o documento, aplica fn e volta para JSON
func mutate(t *testing.T, raw []byte, fn func(doc map[string]any)) []byte {
	t.Helper()

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	fn(doc)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func TestService_Export(t *testing.T) {
	store, err := memory.NewSeeded("Senha@Forte1", true)
	require.NoError(t, err)

	service := NewService(store, nil, version)
	service.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.FixedZone("BRT", -3*3600)) }

	doc, err := service.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, version, doc.Version)
	assert.Equal(t, time.UTC, doc.Timestamp.Location())
	assert.Equal(t, 15, doc.Timestamp.Hour())

	require.NotEmpty(t, doc.Data.Users)
	for _, user := range doc.Data.Users {
		assert.Empty(t, user.PasswordHash, "senha nunca é exportada")
	}

	assert.Len(t, doc.Data.DamageMatrix, 5)
	for _, cell := range doc.Data.PriceCells {
		assert.NotEqual(t, domain.KindDamageMatrix, cell.Kind)
	}

	raw, err := service.ExportJSON(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$", "hash bcrypt não aparece no arquivo")
	assert.Contains(t, string(raw), `"timestamp": "2026-03-01T15:30:00Z"`)
}

func TestService_Validate(t *testing.T) {
	service := NewService(nil, nil, version)
	valid := seededExport(t)

	t.Run("Documento exportado é válido", func(t *testing.T) {
		result := service.Validate(valid)
		assert.True(t, result.Valid, result.Errors)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, 3, result.Counts[domain.TableStores])
		assert.Equal(t, 4, result.Counts[domain.TableModels])
		assert.Equal(t, 5, result.Counts[domain.TableDamageMatrix])
	})

	t.Run("Sem a tabela users gera exatamente um erro", func(t *testing.T) {
		raw := mutate(t, valid, func(doc map[string]any) {
			delete(doc["data"].(map[string]any), domain.TableUsers)
		})

		result := service.Validate(raw)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], domain.TableUsers)
	})

	t.Run("Cada tabela ausente gera seu próprio erro", func(t *testing.T) {
		raw := mutate(t, valid, func(doc map[string]any) {
			data := doc["data"].(map[string]any)
			delete(data, domain.TableStores)
			delete(data, domain.TableCardMachines)
		})

		result := service.Validate(raw)
		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 2)
	})

	t.Run("Versão diferente é só aviso", func(t *testing.T) {
		raw := mutate(t, valid, func(doc map[string]any) { doc["version"] = "0.9.0" })

		result := service.Validate(raw)
		assert.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "0.9.0")
	})

	t.Run("Sem version timestamp e data", func(t *testing.T) {
		result := service.Validate([]byte(`{}`))
		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 3)
	})

	t.Run("Timestamp fora do formato", func(t *testing.T) {
		raw := mutate(t, valid, func(doc map[string]any) { doc["timestamp"] = "01/03/2026" })

		result := service.Validate(raw)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "timestamp")
	})

	t.Run("Tabela que não é lista", func(t *testing.T) {
		raw := mutate(t, valid, func(doc map[string]any) {
			doc["data"].(map[string]any)[domain.TableModels] = map[string]any{"id": "md0001"}
		})

		result := service.Validate(raw)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], domain.TableModels)
	})

	t.Run("price_cells é opcional", func(t *testing.T) {
		raw := mutate(t, valid, func(doc map[string]any) {
			delete(doc["data"].(map[string]any), domain.TablePriceCells)
		})

		assert.True(t, service.Validate(raw).Valid)
	})

	t.Run("JSON inválido", func(t *testing.T) {
		result := service.Validate([]byte(`{"version":`))
		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 1)
	})
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	raw := seededExport(t)

	target := memory.New()
	prices := adjusting.NewService(target, target, target)
	service := NewService(target, prices, version)

	// carrega a coleção vazia antes da importação
	_, ok, err := prices.Lookup(ctx, domain.CellKey{Kind: domain.KindPhoneModel, EntityID: "md0001", Field: domain.FieldCost})
	require.NoError(t, err)
	require.False(t, ok)

	response, err := service.Import(ctx, raw)
	require.NoError(t, err)
	assert.True(t, response.Imported)
	assert.True(t, response.Validation.Valid)
	require.Len(t, response.Validation.Warnings, 1)
	assert.True(t, strings.Contains(response.Validation.Warnings[0], "usuários"))

	cents, ok, err := prices.Lookup(ctx, domain.CellKey{Kind: domain.KindPhoneModel, EntityID: "md0001", Field: domain.FieldCost})
	require.NoError(t, err)
	assert.True(t, ok, "coleção recarregada depois da importação")
	assert.Equal(t, domain.Cents(320000), cents)

	discount, ok, err := prices.Lookup(ctx, domain.CellKey{
		Kind: domain.KindDamageMatrix, EntityID: domain.DamageMatrixEntityID("sc0001", "dm0001"), Field: domain.FieldDiscount,
	})
	require.NoError(t, err)
	assert.True(t, ok, "matriz de avarias volta como células")
	assert.Equal(t, domain.Cents(60000), discount)

	users, err := target.ListUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "usuários não são restaurados")
}

func TestService_Import_DocumentoInvalidoNaoAltera(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockBackupRepository(ctrl)
	repo.EXPECT().Restore(gomock.Any(), gomock.Any()).Times(0)

	service := NewService(repo, nil, version)

	response, err := service.Import(context.Background(), []byte(`{"version":"1.0.0"}`))
	require.NoError(t, err)
	assert.False(t, response.Imported)
	assert.False(t, response.Validation.Valid)
}

func TestService_Import_ErroAoRestaurar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	raw := seededExport(t)
	repo := mocks.NewMockBackupRepository(ctrl)
	repo.EXPECT().Restore(gomock.Any(), gomock.Any()).Return(errors.New("transação abortada"))

	_, err := NewService(repo, nil, version).Import(context.Background(), raw)
	assert.ErrorIs(t, err, ErrRestore)
}
