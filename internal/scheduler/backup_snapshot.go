package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/phone-retail-admin-api/internal/config"
)

const snapshotFilePrefix = "backup-"

// SnapshotExporter gera o documento de backup serializado
type SnapshotExporter interface {
	ExportJSON(ctx context.Context) ([]byte, error)
}

type BackupSnapshotConfig struct {
	CronSchedule string
	Enabled      bool
	Dir          string
	Keep         int
}

type BackupSnapshotService struct {
	scheduler          *gocron.Scheduler
	exporter           SnapshotExporter
	config             BackupSnapshotConfig
	now                func() time.Time
	running            bool
	mutex              sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastFile           string
	lastError          string
}

func NewBackupSnapshotService(exporter SnapshotExporter, cfg *config.Config) *BackupSnapshotService {
	snapshotConfig := BackupSnapshotConfig{
		CronSchedule: cfg.Backup.SnapshotCron,    // Default: 2h da manhã todos os dias
		Enabled:      cfg.Backup.SnapshotEnabled, // Default: desabilitado
		Dir:          cfg.Backup.SnapshotDir,
		Keep:         cfg.Backup.SnapshotKeep,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": snapshotConfig.CronSchedule,
		"dir":           snapshotConfig.Dir,
		"keep":          snapshotConfig.Keep,
	}).Info("Configuração do agendador de backup carregada")

	return &BackupSnapshotService{
		scheduler: gocron.NewScheduler(time.Local),
		exporter:  exporter,
		config:    snapshotConfig,
		now:       time.Now,
	}
}

func (s *BackupSnapshotService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de backup desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de backup")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Snapshot(ctx); err != nil {
			logrus.WithError(err).Error("Erro no backup agendado")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar backup: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de backup")
		s.scheduler.Stop()
	}()

	return nil
}

// Snapshot grava o backup atual em um arquivo novo e devolve o caminho
func (s *BackupSnapshotService) Snapshot(ctx context.Context) (string, error) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Warn("Backup agendado já está em execução")
		return "", nil
	}
	s.running = true
	s.lastRunStartedAt = s.now()
	s.mutex.Unlock()

	path, err := s.writeSnapshot(ctx)

	s.mutex.Lock()
	s.running = false
	s.lastRunCompletedAt = s.now()
	s.lastFile = path
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.mutex.Unlock()

	if err != nil {
		return "", err
	}

	logrus.WithField("file", path).Info("Backup gravado")

	if err := s.prune(); err != nil {
		logrus.WithError(err).Warn("Erro ao remover backups antigos")
	}

	return path, nil
}

// prune mantém só os Keep backups mais recentes; o nome carrega o horário, então a ordem
// alfabética é a cronológica
func (s *BackupSnapshotService) prune() error {
	if s.config.Keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.config.Dir)
	if err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && strings.HasPrefix(name, snapshotFilePrefix) && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}
	if len(names) <= s.config.Keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-s.config.Keep] {
		if err := os.Remove(filepath.Join(s.config.Dir, name)); err != nil {
			return fmt.Errorf("erro ao remover %s: %w", name, err)
		}
		logrus.WithField("file", name).Debug("Backup antigo removido")
	}

	return nil
}

func (s *BackupSnapshotService) writeSnapshot(ctx context.Context) (string, error) {
	raw, err := s.exporter.ExportJSON(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar diretório de backup: %w", err)
	}

	name := snapshotFilePrefix + s.now().UTC().Format("20060102T150405Z") + ".json"
	path := filepath.Join(s.config.Dir, name)

	// grava em arquivo temporário e renomeia para nunca deixar backup pela metade
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return "", fmt.Errorf("erro ao gravar backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("erro ao gravar backup: %w", err)
	}

	return path, nil
}

// TriggerManualSync dispara um backup fora do agendamento
func (s *BackupSnapshotService) TriggerManualSync() {
	logrus.Info("Iniciando backup manual")
	go func() {
		if _, err := s.Snapshot(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no backup manual")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *BackupSnapshotService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"dir":                   s.config.Dir,
		"keep":                  s.config.Keep,
		"running":               s.running,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_file":             s.lastFile,
		"last_error":            s.lastError,
	}
}
