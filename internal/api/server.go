package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/phone-retail-admin-api/internal/api/handler"
	"github.com/vfg2006/phone-retail-admin-api/internal/api/handler/router"
	"github.com/vfg2006/phone-retail-admin-api/internal/config"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/adjusting"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/backup"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/simulating"
	"github.com/vfg2006/phone-retail-admin-api/pkg/middleware"
)

// Services reúne os casos de uso expostos pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Catalog       catalog.Cataloger
	Adjuster      adjusting.Adjuster
	Backup        backup.Backuper
	Preferences   preferences.Preferencer
	Simulator     simulating.Simulator
	CronJobs      handler.CronJobServices
}

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o roteador com todas as rotas e a cadeia global de middlewares
func NewHandler(config *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Stores(services.Catalog)...),
		router.WithRoutes(handler.Catalog(services.Catalog)...),
		router.WithRoutes(handler.Prices(services.Adjuster)...),
		router.WithRoutes(handler.BulkSessions(services.Adjuster)...),
		router.WithRoutes(handler.Backup(services.Backup)...),
		router.WithRoutes(handler.Preferences(services.Preferences)...),
		router.WithRoutes(handler.Simulation(services.Simulator)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)
	logrus.Debugf("%d rotas registradas", len(rt.Routes()))

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(config *config.Config, services Services) (*Server, error) {
	if services.Authenticator == nil {
		return nil, fmt.Errorf("api: autenticador é obrigatório")
	}

	// streams de eventos herdam este contexto e terminam quando o desligamento começa
	baseCtx, cancelStreams := context.WithCancel(context.Background())

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(config.Server.Host, config.Server.Port),
		Handler:           NewHandler(config, services),
		ReadHeaderTimeout: 2 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	httpServer.RegisterOnShutdown(cancelStreams)

	return &Server{httpServer: httpServer}, nil
}

// Run atende até receber SIGINT/SIGTERM ou até ctx ser cancelado, e então desliga com
// shutdownTimeout. Falha ao abrir a porta encerra Run com o erro.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err, ok := <-listenErr:
		if ok {
			return fmt.Errorf("api: servidor interrompido: %w", err)
		}
		return nil
	case <-ctx.Done():
		logrus.Info("Sinal de término recebido, iniciando desligamento gracioso")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
