package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/backup"
	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

// ExportBackup devolve o documento completo como anexo JSON
func ExportBackup(service backup.Backuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ExportBackup")

		raw, err := service.ExportJSON(r.Context())
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		filename := fmt.Sprintf("backup-%s.json", time.Now().UTC().Format("20060102T150405Z"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(raw); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar backup")
		}
	}
}

// ValidateBackup confere o documento sem gravar nada
func ValidateBackup(service backup.Backuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := readBackupBody(w, r)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, service.Validate(raw))
	}
}

// ImportBackup substitui o catálogo pelo documento enviado. Exige ?confirm=true.
func ImportBackup(service backup.Backuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ImportBackup")

		if !queryBool(r, "confirm") {
			apiErrors.WriteError(w, apiErrors.ErrConfirmationRequired, "Confirme para substituir todos os dados atuais", nil)
			return
		}

		raw, ok := readBackupBody(w, r)
		if !ok {
			return
		}

		response, err := service.Import(r.Context(), raw)
		if err != nil {
			writeServiceError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}

		if !response.Imported {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Backup inválido", response.Validation)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

func readBackupBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Erro ao ler backup")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler o arquivo de backup", nil)
		return nil, false
	}
	return raw, true
}
