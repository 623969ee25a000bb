package adjusting

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
)

// LookupFunc consulta o valor atual de uma célula
type LookupFunc func(key domain.CellKey) (domain.Cents, bool)

type cellState struct {
	cents   domain.Cents
	existed bool
}

// snapshot guarda o estado anterior das células tocadas por um lote e o valor que o lote gravou
type snapshot struct {
	before  map[domain.CellKey]cellState
	written map[domain.CellKey]domain.Cents
}

// Collection é o estado em memória dos preços, indexado pela chave composta.
// Cada tipo de entidade é carregado do repositório na primeira leitura.
type Collection struct {
	mu     sync.RWMutex
	repo   repository.PriceRepository
	cells  map[domain.CellKey]domain.Cents
	loaded map[domain.EntityKind]bool
}

func NewCollection(repo repository.PriceRepository) *Collection {
	return &Collection{
		repo:   repo,
		cells:  make(map[domain.CellKey]domain.Cents),
		loaded: make(map[domain.EntityKind]bool),
	}
}

func (c *Collection) ensureLoaded(ctx context.Context, kinds ...domain.EntityKind) error {
	for _, kind := range kinds {
		c.mu.RLock()
		done := c.loaded[kind]
		c.mu.RUnlock()
		if done {
			continue
		}

		cells, err := c.repo.ListCells(ctx, kind)
		if err != nil {
			return errors.Wrapf(err, "falha ao carregar preços de %s", kind)
		}

		c.mu.Lock()
		if !c.loaded[kind] {
			for key := range c.cells {
				if key.Kind == kind {
					delete(c.cells, key)
				}
			}
			for _, cell := range cells {
				c.cells[cell.CellKey] = cell.Cents
			}
			c.loaded[kind] = true
		}
		c.mu.Unlock()
	}

	return nil
}

func (c *Collection) Lookup(ctx context.Context, key domain.CellKey) (domain.Cents, bool, error) {
	if err := c.ensureLoaded(ctx, key.Kind); err != nil {
		return 0, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	cents, ok := c.cells[key]
	return cents, ok, nil
}

// Read executa fn com uma visão consistente das células do tipo
func (c *Collection) Read(ctx context.Context, kind domain.EntityKind, fn func(lookup LookupFunc)) error {
	if err := c.ensureLoaded(ctx, kind); err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	fn(func(key domain.CellKey) (domain.Cents, bool) {
		cents, ok := c.cells[key]
		return cents, ok
	})
	return nil
}

// Cells devolve as células do tipo ordenadas pela chave
func (c *Collection) Cells(ctx context.Context, kind domain.EntityKind) ([]domain.PriceCell, error) {
	if err := c.ensureLoaded(ctx, kind); err != nil {
		return nil, err
	}

	c.mu.RLock()
	out := make([]domain.PriceCell, 0)
	for key, cents := range c.cells {
		if key.Kind == kind {
			out = append(out, domain.PriceCell{CellKey: key, Cents: cents})
		}
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out, nil
}

// replace grava o lote inteiro com um único lock e devolve o estado anterior.
// Before e Existed das alterações são atualizados com o valor encontrado no momento da troca.
func (c *Collection) replace(changes []domain.PriceChange) *snapshot {
	snap := &snapshot{
		before:  make(map[domain.CellKey]cellState, len(changes)),
		written: make(map[domain.CellKey]domain.Cents, len(changes)),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range changes {
		key := changes[i].CellKey
		if _, seen := snap.before[key]; !seen {
			cents, ok := c.cells[key]
			snap.before[key] = cellState{cents: cents, existed: ok}
			changes[i].Before = cents
			changes[i].Existed = ok
		}
		c.cells[key] = changes[i].After
		snap.written[key] = changes[i].After
	}

	return snap
}

// restore devolve as células ao estado do snapshot, também com um único lock.
// Célula que outro lote alterou depois desta troca fica com o valor mais recente.
func (c *Collection) restore(snap *snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, state := range snap.before {
		if current, ok := c.cells[key]; !ok || current != snap.written[key] {
			continue
		}
		if state.existed {
			c.cells[key] = state.cents
		} else {
			delete(c.cells, key)
		}
	}
}

// Invalidate descarta o estado carregado; a próxima leitura consulta o repositório de novo
func (c *Collection) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cells = make(map[domain.CellKey]domain.Cents)
	c.loaded = make(map[domain.EntityKind]bool)
}
