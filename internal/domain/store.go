// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateStoreRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

type UpdateStoreRequest struct {
	ID     string  `json:"id"`
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

// ActiveStoreIDs devolve os ids das lojas ativas preservando a ordem
func ActiveStoreIDs(stores []*Store) []string {
	ids := make([]string, 0, len(stores))
	for _, store := range stores {
		if store.Active {
			ids = append(ids, store.ID)
		}
	}
	return ids
}
