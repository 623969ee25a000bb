package currency

import (
	"context"
	"sync"
)

// PersistFunc grava um novo valor confirmado. Um erro faz o campo voltar ao último valor válido.
type PersistFunc func(ctx context.Context, cents int64) error

// Field mantém o estado de edição de um valor monetário.
//
// Com foco, o texto exibido é o que o usuário digitou, sem formatação, e atualizações externas
// não sobrescrevem esse texto. Ao perder o foco o texto é interpretado, limitado e formatado.
type Field struct {
	mu        sync.Mutex
	committed int64
	raw       string
	focused   bool
	max       int64
	persist   PersistFunc
}

func NewField(committed int64, persist PersistFunc) *Field {
	return &Field{
		committed: ClampNonNegative(committed),
		max:       MaxCents,
		persist:   persist,
	}
}

// WithMax define o teto aplicado no blur
func (f *Field) WithMax(max int64) *Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.max = max
	return f
}

func (f *Field) Focus() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.focused {
		return
	}
	f.focused = true
	f.raw = FormatEditing(f.committed)
}

func (f *Field) Type(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.focused {
		f.focused = true
	}
	f.raw = text
}

// SetExternal recebe um valor vindo de fora (outra aba, outro usuário).
func (f *Field) SetExternal(cents int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.committed = ClampNonNegative(cents)
	if !f.focused {
		f.raw = ""
	}
}

func (f *Field) Focused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused
}

func (f *Field) Value() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.committed
}

func (f *Field) Display() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.focused {
		return f.raw
	}
	return Format(f.committed)
}

// Blur confirma a edição. Retorna true quando o valor mudou e foi persistido.
func (f *Field) Blur(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if !f.focused {
		f.mu.Unlock()
		return false, nil
	}

	next := ParseInputToCents(f.raw)
	if next > f.max {
		next = f.max
	}

	previous := f.committed
	f.focused = false
	f.raw = ""

	if next == previous {
		f.mu.Unlock()
		return false, nil
	}

	f.committed = next
	persist := f.persist
	f.mu.Unlock()

	if persist == nil {
		return true, nil
	}

	if err := persist(ctx, next); err != nil {
		f.mu.Lock()
		// só reverte se ninguém confirmou outro valor enquanto persistíamos
		if f.committed == next {
			f.committed = previous
		}
		f.mu.Unlock()
		return false, err
	}

	return true, nil
}
