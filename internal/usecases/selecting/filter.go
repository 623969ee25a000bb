// Package selecting mantém o conjunto de itens escolhidos para operações em massa,
// separado do filtro que decide quais itens estão visíveis.
package selecting

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Item é o que uma tabela precisa saber de uma entidade para filtrar e selecionar
type Item interface {
	SelectionID() string
	SearchText() string
	CategoryKey() string
	IsActive() bool
}

type Filter struct {
	Text       string
	CategoryID string
	Status     string
}

func NewFilter(f domain.SelectionFilter) Filter {
	return Filter{
		Text:       strings.TrimSpace(f.Text),
		CategoryID: strings.TrimSpace(f.CategoryID),
		Status:     strings.TrimSpace(f.Status),
	}
}

func (f Filter) ToDomain() domain.SelectionFilter {
	return domain.SelectionFilter{Text: f.Text, CategoryID: f.CategoryID, Status: f.Status}
}

func (f Filter) IsZero() bool {
	return f.Text == "" && f.CategoryID == "" && (f.Status == "" || f.Status == StatusAll)
}

func (f Filter) Valid() bool {
	switch f.Status {
	case "", StatusAll, StatusActive, StatusInactive:
		return true
	}
	return false
}

// Match compara o texto sem diferenciar maiúsculas e acentos; todos os termos precisam aparecer
func (f Filter) Match(item Item) bool {
	switch f.Status {
	case StatusActive:
		if !item.IsActive() {
			return false
		}
	case StatusInactive:
		if item.IsActive() {
			return false
		}
	}

	if f.CategoryID != "" && item.CategoryKey() != f.CategoryID {
		return false
	}

	if f.Text == "" {
		return true
	}

	haystack := fold(item.SearchText() + " " + item.SelectionID())
	for _, term := range strings.Fields(fold(f.Text)) {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// Apply devolve os itens que passam no filtro, na ordem original
func Apply[T Item](items []T, f Filter) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
