package handler

import (
	"net/http"

	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeBulkSessions   = "bulk-sessions"
	CronJobTypeBackupSnapshot = "backup-snapshot"
	CronJobTypeAll            = "all"
)

// CronJob é o que a API precisa de um serviço agendado
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	SessionJanitor CronJob
	BackupSnapshot CronJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RunCronJob")

		cronType := pathParam(r, "type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeBulkSessions:
			if services.SessionJanitor == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de sessões não disponível", nil)
				return
			}
			services.SessionJanitor.TriggerManualSync()

		case CronJobTypeBackupSnapshot:
			if services.BackupSnapshot == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de backup agendado não disponível", nil)
				return
			}
			services.BackupSnapshot.TriggerManualSync()

		case CronJobTypeAll:
			if services.SessionJanitor != nil {
				services.SessionJanitor.TriggerManualSync()
			}
			if services.BackupSnapshot != nil {
				services.BackupSnapshot.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: bulk-sessions, backup-snapshot, all", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.SessionJanitor != nil {
			status[CronJobTypeBulkSessions] = services.SessionJanitor.GetStatus()
		}
		if services.BackupSnapshot != nil {
			status[CronJobTypeBackupSnapshot] = services.BackupSnapshot.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
