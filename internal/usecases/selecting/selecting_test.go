package selecting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

func catalog() []Item {
	return []Item{
		&domain.PhoneModel{ID: "md0001", Name: "iPhone 15", Brand: "Apple", Storage: "128GB", CategoryID: "ct0001", Active: true},
		&domain.PhoneModel{ID: "md0002", Name: "iPhone 15 Pro", Brand: "Apple", Storage: "256GB", CategoryID: "ct0001", Active: true},
		&domain.PhoneModel{ID: "md0003", Name: "Galaxy S24", Brand: "Samsung", Storage: "256GB", CategoryID: "ct0001", Active: false},
		&domain.PhoneModel{ID: "md0004", Name: "iPad Air", Brand: "Apple", Storage: "64GB", CategoryID: "ct0002", Active: true},
		&domain.TradeInDevice{ID: "tr0001", Name: "Câmera traseira", SubcategoryID: "sc0001", Active: true},
	}
}

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "Filtro vazio aceita tudo",
			filter:   Filter{},
			expected: []string{"md0001", "md0002", "md0003", "md0004", "tr0001"},
		},
		{
			name:     "Texto sem diferenciar maiúsculas",
			filter:   Filter{Text: "IPHONE"},
			expected: []string{"md0001", "md0002"},
		},
		{
			name:     "Todos os termos precisam aparecer",
			filter:   Filter{Text: "iphone pro"},
			expected: []string{"md0002"},
		},
		{
			name:     "Texto sem acento encontra item acentuado",
			filter:   Filter{Text: "camera"},
			expected: []string{"tr0001"},
		},
		{
			name:     "Categoria",
			filter:   Filter{CategoryID: "ct0002"},
			expected: []string{"md0004"},
		},
		{
			name:     "Somente inativos",
			filter:   Filter{Status: StatusInactive},
			expected: []string{"md0003"},
		},
		{
			name:     "Somente ativos com texto",
			filter:   Filter{Text: "256", Status: StatusActive},
			expected: []string{"md0002"},
		},
		{
			name:     "Busca pelo id",
			filter:   Filter{Text: "md0004"},
			expected: []string{"md0004"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, item := range Apply(catalog(), tt.filter) {
				got = append(got, item.SelectionID())
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFilter_Valid(t *testing.T) {
	assert.True(t, Filter{}.Valid())
	assert.True(t, Filter{Status: StatusActive}.Valid())
	assert.False(t, Filter{Status: "arquivado"}.Valid())
	assert.True(t, Filter{Status: StatusAll}.IsZero())
	assert.False(t, Filter{Text: "a"}.IsZero())
}

func TestSelection_SelecionarTodosRespeitaFiltro(t *testing.T) {
	items := catalog()
	selection := NewSelection()
	filter := Filter{Text: "iphone"}

	added := selection.SelectAll(items, filter)

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"md0001", "md0002"}, selection.IDs())

	// limpar o filtro não altera a seleção
	filter = Filter{}
	assert.Len(t, Apply(items, filter), 5)
	assert.Equal(t, []string{"md0001", "md0002"}, selection.IDs())
}

func TestSelection_RemoverItemNaoAlteraFiltro(t *testing.T) {
	items := catalog()
	selection := NewSelection()
	filter := Filter{CategoryID: "ct0001"}

	selection.SelectAll(items, filter)
	selection.Deselect("md0002")

	assert.Equal(t, Filter{CategoryID: "ct0001"}, filter)
	assert.Len(t, Apply(items, filter), 3)
	assert.Equal(t, []string{"md0001", "md0003"}, selection.IDs())
}

func TestSelection_Operacoes(t *testing.T) {
	selection := NewSelection("a", "b", "")
	assert.Equal(t, 2, selection.Len())

	selection.Toggle("b")
	selection.Toggle("c")
	assert.Equal(t, []string{"a", "c"}, selection.IDs())
	assert.True(t, selection.Contains("c"))

	selection.Retain([]Item{&domain.PhoneModel{ID: "c"}})
	assert.Equal(t, []string{"c"}, selection.IDs())

	selection.Clear()
	assert.Equal(t, 0, selection.Len())
	assert.Empty(t, selection.IDs())
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name       string
		page, size int
		expected   []int
		totalPages int
	}{
		{name: "Primeira página", page: 1, size: 3, expected: []int{1, 2, 3}, totalPages: 3},
		{name: "Última página incompleta", page: 3, size: 3, expected: []int{7}, totalPages: 3},
		{name: "Página além do fim", page: 9, size: 3, expected: []int{}, totalPages: 3},
		{name: "Valores inválidos usam padrão", page: 0, size: 0, expected: items, totalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.page, tt.size)
			assert.Equal(t, tt.expected, page.Items)
			assert.Equal(t, 7, page.Total)
			assert.Equal(t, tt.totalPages, page.TotalPages)
		})
	}
}
