package handler

import (
	"net/http"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/adjusting"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

// CreateBulkSession abre o editor em massa para um tipo de entidade
func CreateBulkSession(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateBulkSession")

		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.CreateBulkSessionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		session, err := service.CreateSession(r.Context(), userClaims, req.Kind)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusCreated, session)
	}
}

func GetBulkSession(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		session, err := service.GetSession(r.Context(), userClaims, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrSessionNotFound)
			return
		}

		writeJSON(w, r, http.StatusOK, session)
	}
}

// GetBulkSessionItems lista as linhas da sessão já filtradas, com a marcação de seleção
func GetBulkSessionItems(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		items, err := service.SessionItems(r.Context(), userClaims, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrSessionNotFound)
			return
		}

		writeJSON(w, r, http.StatusOK, items)
	}
}

func ConfigureBulkSession(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.ConfigureBulkSessionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		session, err := service.Configure(r.Context(), userClaims, pathParam(r, "id"), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrInvalidRequest)
			return
		}

		writeJSON(w, r, http.StatusOK, session)
	}
}

func UpdateBulkSelection(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.UpdateSelectionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		session, err := service.UpdateSelection(r.Context(), userClaims, pathParam(r, "id"), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrInvalidRequest)
			return
		}

		writeJSON(w, r, http.StatusOK, session)
	}
}

func PreviewBulkSession(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.PreviewBulkRequest
		if !decodeBody(w, r, &req) {
			return
		}

		preview, err := service.Preview(r.Context(), userClaims, pathParam(r, "id"), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrInvalidRequest)
			return
		}

		writeJSON(w, r, http.StatusOK, preview)
	}
}

// ApplyBulkSession grava a prévia calculada. Falha de gravação devolve PRC_001 com os valores restaurados.
func ApplyBulkSession(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ApplyBulkSession")

		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		response, err := service.Apply(r.Context(), userClaims, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

func ApplyCustomBulkSession(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ApplyCustomBulkSession")

		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req domain.ApplyCustomRequest
		if !decodeBody(w, r, &req) {
			return
		}

		response, err := service.ApplyCustom(r.Context(), userClaims, pathParam(r, "id"), &req)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

// DismissBulkSession descarta a sessão sem gravar nada
func DismissBulkSession(service adjusting.Adjuster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		if err := service.Dismiss(r.Context(), userClaims, pathParam(r, "id")); err != nil {
			writeServiceError(w, r, err, apiErrors.ErrSessionNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
