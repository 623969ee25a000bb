package selecting

import "sort"

// Selection é um conjunto de ids. Não é seguro para uso concorrente; quem o guarda sincroniza.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{ids: make(map[string]struct{}, len(ids))}
	s.Select(ids...)
	return s
}

func (s *Selection) Select(ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Deselect(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

func (s *Selection) Toggle(id string) {
	if s.Contains(id) {
		delete(s.ids, id)
		return
	}
	s.Select(id)
}

// SelectAll adiciona apenas os itens que passam no filtro e devolve quantos foram incluídos
func (s *Selection) SelectAll(items []Item, f Filter) int {
	added := 0
	for _, item := range Apply(items, f) {
		id := item.SelectionID()
		if !s.Contains(id) {
			added++
		}
		s.Select(id)
	}
	return added
}

func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Retain descarta ids que não existem mais na coleção
func (s *Selection) Retain(items []Item) {
	valid := make(map[string]struct{}, len(items))
	for _, item := range items {
		valid[item.SelectionID()] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := valid[id]; !ok {
			delete(s.ids, id)
		}
	}
}

func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs devolve os ids ordenados
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
