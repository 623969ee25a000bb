package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/phone-retail-admin-api/internal/config"
)

type fakeExpirer struct {
	mu      sync.Mutex
	calls   []time.Duration
	expired int
	block   chan struct{}
}

func (f *fakeExpirer) ExpireSessions(ttl time.Duration) int {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ttl)
	return f.expired
}

func janitorConfig(enabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.BulkSession.TTL = 30 * time.Minute
	cfg.BulkSession.JanitorCron = "*/5 * * * *"
	cfg.BulkSession.JanitorEnabled = enabled
	return cfg
}

func TestSessionJanitorService_Run(t *testing.T) {
	expirer := &fakeExpirer{expired: 3}
	service := NewSessionJanitorService(expirer, janitorConfig(true))

	assert.Equal(t, 3, service.Run())
	require.Len(t, expirer.calls, 1)
	assert.Equal(t, 30*time.Minute, expirer.calls[0], "usa o TTL configurado")

	status := service.GetStatus()
	assert.Equal(t, 3, status["last_expired"])
	assert.Equal(t, false, status["running"])
	assert.Equal(t, "30m0s", status["ttl"])
	assert.False(t, status["last_run_completed_at"].(time.Time).IsZero())
}

func TestSessionJanitorService_RunConcorrente(t *testing.T) {
	expirer := &fakeExpirer{expired: 1, block: make(chan struct{})}
	service := NewSessionJanitorService(expirer, janitorConfig(true))

	done := make(chan int)
	go func() { done <- service.Run() }()

	require.Eventually(t, func() bool {
		return service.GetStatus()["running"] == true
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, -1, service.Run(), "segunda execução é ignorada enquanto a primeira roda")

	close(expirer.block)
	assert.Equal(t, 1, <-done)
}

func TestSessionJanitorService_StartDesabilitado(t *testing.T) {
	expirer := &fakeExpirer{}
	service := NewSessionJanitorService(expirer, janitorConfig(false))

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["enabled"])
	assert.Empty(t, expirer.calls)
}

func TestSessionJanitorService_CronInvalida(t *testing.T) {
	cfg := janitorConfig(true)
	cfg.BulkSession.JanitorCron = "nao-e-cron"
	service := NewSessionJanitorService(&fakeExpirer{}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, service.Start(ctx))
}

func TestSessionJanitorService_TriggerManualSync(t *testing.T) {
	expirer := &fakeExpirer{expired: 2}
	service := NewSessionJanitorService(expirer, janitorConfig(true))

	service.TriggerManualSync()

	assert.Eventually(t, func() bool {
		return service.GetStatus()["last_expired"] == 2
	}, time.Second, 5*time.Millisecond)
}
