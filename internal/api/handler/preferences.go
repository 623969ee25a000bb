package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vfg2006/phone-retail-admin-api/internal/domain"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
	"github.com/vfg2006/phone-retail-admin-api/pkg/middleware"
)

const keepAliveInterval = 25 * time.Second

type RecentSearchRequest struct {
	Term string `json:"term"`
}

func GetPreferences(service preferences.Preferencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		prefs, err := service.Get(r.Context(), userClaims.UserID)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrExternalService)
			return
		}

		writeJSON(w, r, http.StatusOK, prefs)
	}
}

func UpdatePreferences(service preferences.Preferencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var prefs domain.UserPreferences
		if !decodeBody(w, r, &prefs) {
			return
		}

		saved, err := service.Update(r.Context(), userClaims.UserID, prefs, r.Header.Get(middleware.ClientIDHeader))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrExternalService)
			return
		}

		writeJSON(w, r, http.StatusOK, saved)
	}
}

func GetRecentSearches(service preferences.Preferencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		terms, err := service.RecentSearches(r.Context(), userClaims.UserID, pathParam(r, "scope"))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrExternalService)
			return
		}

		writeJSON(w, r, http.StatusOK, terms)
	}
}

func AddRecentSearch(service preferences.Preferencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req RecentSearchRequest
		if !decodeBody(w, r, &req) {
			return
		}

		terms, err := service.AddRecentSearch(r.Context(), userClaims.UserID, pathParam(r, "scope"), req.Term, r.Header.Get(middleware.ClientIDHeader))
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrExternalService)
			return
		}

		writeJSON(w, r, http.StatusOK, terms)
	}
}

func ClearRecentSearches(service preferences.Preferencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		if err := service.ClearRecentSearches(r.Context(), userClaims.UserID, pathParam(r, "scope"), r.Header.Get(middleware.ClientIDHeader)); err != nil {
			writeServiceError(w, r, err, apiErrors.ErrExternalService)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// StreamPreferenceEvents envia as alterações do usuário como server-sent events até o cliente desconectar.
// Eventos gerados pela própria aba (client_id) não são reenviados.
func StreamPreferenceEvents(service preferences.Preferencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Streaming não suportado", nil)
			return
		}

		ctx := r.Context()
		changes, err := service.Subscribe(ctx, userClaims.UserID)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrExternalService)
			return
		}

		clientID := r.URL.Query().Get("client_id")
		logger := log.ForContext(ctx).WithField("client_id", clientID)
		logger.Info("Assinatura de preferências aberta")

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Assinatura de preferências encerrada")
				return

			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				flusher.Flush()

			case change, open := <-changes:
				if !open {
					return
				}
				if clientID != "" && change.Origin == clientID {
					continue
				}

				payload, err := json.Marshal(change)
				if err != nil {
					logger.WithError(err).Error("Erro ao serializar alteração de preferência")
					continue
				}
				if _, err := fmt.Fprintf(w, "event: preference\ndata: %s\n\n", payload); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
