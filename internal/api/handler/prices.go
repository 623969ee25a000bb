package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/adjusting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

// ListPriceCells lista as células de preço do tipo informado em ?kind=
func ListPriceCells(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := domain.EntityKind(r.URL.Query().Get("kind"))
		if !kind.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de entidade inválido", map[string]any{
				"kind": kind,
			})
			return
		}

		cells, err := service.ListCells(r.Context(), kind)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, cells)
	}
}

// UpdatePriceCell grava o valor de uma única célula
func UpdatePriceCell(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.UpdateCellRequest
		if !decodeBody(w, r, &req) {
			return
		}

		cell, err := service.UpdateCell(r.Context(), userClaims, &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, cell)
	}
}

// GetPriceHistory lista as alterações de uma célula, mais recentes primeiro
func GetPriceHistory(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		key := domain.CellKey{
			Kind:     domain.EntityKind(query.Get("kind")),
			EntityID: query.Get("entity_id"),
			Field:    query.Get("field"),
			StoreID:  query.Get("store_id"),
		}

		history, err := service.History(r.Context(), key, queryInt(r, "limit"))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, history)
	}
}

// CopyPrices copia os preços por loja entre duas lojas. Sem confirm devolve só a prévia com 409.
func CopyPrices(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CopyPrices")

		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.CopyPricesRequest
		if !decodeBody(w, r, &req) {
			return
		}

		response, err := service.CopyBetweenStores(r.Context(), userClaims, &req)
		if errors.Is(err, adjusting.ErrConfirmationRequired) && response != nil {
			apiErrors.WriteError(w, apiErrors.ErrConfirmationRequired, response.Message, response)
			return
		}
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}
