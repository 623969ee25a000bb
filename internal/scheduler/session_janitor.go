// Package scheduler contém os serviços agendados de manutenção
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/phone-retail-admin-api/internal/config"
)

// SessionExpirer descarta sessões de edição em massa paradas há mais que o TTL
type SessionExpirer interface {
	ExpireSessions(ttl time.Duration) int
}

type SessionJanitorConfig struct {
	CronSchedule string
	Enabled      bool
	TTL          time.Duration
}

type SessionJanitorService struct {
	scheduler          *gocron.Scheduler
	expirer            SessionExpirer
	config             SessionJanitorConfig
	running            bool
	mutex              sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastExpired        int
}

func NewSessionJanitorService(expirer SessionExpirer, cfg *config.Config) *SessionJanitorService {
	janitorConfig := SessionJanitorConfig{
		CronSchedule: cfg.BulkSession.JanitorCron,    // Default: a cada 5 minutos
		Enabled:      cfg.BulkSession.JanitorEnabled, // Default: habilitado
		TTL:          cfg.BulkSession.TTL,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": janitorConfig.CronSchedule,
		"ttl":           janitorConfig.TTL.String(),
	}).Info("Configuração da limpeza de sessões de edição em massa carregada")

	return &SessionJanitorService{
		scheduler: gocron.NewScheduler(time.Local),
		expirer:   expirer,
		config:    janitorConfig,
	}
}

func (s *SessionJanitorService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de sessões de edição em massa desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza de sessões")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Run()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

// Run expira as sessões paradas e devolve quantas foram removidas; -1 quando já havia execução em andamento
func (s *SessionJanitorService) Run() int {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Warn("Limpeza de sessões já está em execução")
		return -1
	}
	s.running = true
	s.lastRunStartedAt = time.Now()
	s.mutex.Unlock()

	expired := s.expirer.ExpireSessions(s.config.TTL)

	s.mutex.Lock()
	s.running = false
	s.lastRunCompletedAt = time.Now()
	s.lastExpired = expired
	s.mutex.Unlock()

	if expired > 0 {
		logrus.WithField("expired", expired).Info("Sessões de edição em massa expiradas")
	}

	return expired
}

// TriggerManualSync dispara a limpeza fora do agendamento
func (s *SessionJanitorService) TriggerManualSync() {
	logrus.Info("Iniciando limpeza manual de sessões")
	go s.Run()
}

// GetStatus retorna o status atual do agendador
func (s *SessionJanitorService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron":                  s.config.CronSchedule,
		"ttl":                   s.config.TTL.String(),
		"running":               s.running,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_expired":          s.lastExpired,
	}
}
