package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/kvstore"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository"
	"github.com/vfg2006/phone-retail-admin-api/infrastructure/repository/memory"
	"github.com/vfg2006/phone-retail-admin-api/internal/api"
	"github.com/vfg2006/phone-retail-admin-api/internal/api/handler"
	"github.com/vfg2006/phone-retail-admin-api/internal/config"
	"github.com/vfg2006/phone-retail-admin-api/internal/scheduler"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/adjusting"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/authenticating"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/backup"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/catalog"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/preferences"
	"github.com/vfg2006/phone-retail-admin-api/internal/usecases/simulating"
	"github.com/vfg2006/phone-retail-admin-api/pkg/log"
)

// repositories agrupa os repositórios do driver escolhido em STORAGE_DRIVER
type repositories struct {
	users   repository.UserRepository
	stores  repository.StoreRepository
	catalog repository.CatalogRepository
	prices  repository.PriceRepository
	backup  repository.BackupRepository
	close   func()
}

func main() {
	// Inicializa configuração de logs
	configureWorkingDir()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define nível e formato de log com base na configuração
	log.Setup(cfg.App.LogLevel, cfg.App.LogFormat)
	logrus.Infof("Nível de log configurado para: %s (%s)", logrus.GetLevel(), cfg.App.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos := newRepositories(ctx, cfg)
	defer repos.close()

	prefsStore, closePrefs := newPreferencesStore(ctx, cfg)
	defer closePrefs()

	authenticator := authenticating.NewService(repos.users, repos.stores, cfg)
	adjuster := adjusting.NewService(repos.prices, repos.catalog, repos.stores)
	catalogService := catalog.NewService(repos.catalog, repos.stores, adjuster)
	backupService := backup.NewService(repos.backup, adjuster, cfg.Backup.Version)
	preferencesService := preferences.NewService(prefsStore)
	simulator := simulating.NewService(repos.catalog, repos.stores, adjuster)

	// Inicializa os agendadores
	sessionJanitor := scheduler.NewSessionJanitorService(adjuster, cfg)
	backupSnapshot := scheduler.NewBackupSnapshotService(backupService, cfg)

	if err := sessionJanitor.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de sessões")
	} else {
		logrus.Info("Agendador de limpeza de sessões iniciado com sucesso")
	}

	if err := backupSnapshot.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de backup")
	} else {
		logrus.Info("Agendador de backup iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Catalog:       catalogService,
		Adjuster:      adjuster,
		Backup:        backupService,
		Preferences:   preferencesService,
		Simulator:     simulator,
		CronJobs: handler.CronJobServices{
			SessionJanitor: sessionJanitor,
			BackupSnapshot: backupSnapshot,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureWorkingDir aponta o diretório de trabalho para o do binário, onde fica o .env local
func configureWorkingDir() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)
}

func newRepositories(ctx context.Context, cfg *config.Config) repositories {
	if cfg.Storage.Driver == config.StoragePostgres {
		conn := pgconn(ctx, cfg.Database)
		return repositories{
			users:   repository.NewUserRepository(conn),
			stores:  repository.NewStoreRepository(conn),
			catalog: repository.NewCatalogRepository(conn),
			prices:  repository.NewPriceRepository(conn),
			backup:  repository.NewBackupRepository(conn),
			close: func() {
				if err := conn.Close(); err != nil {
					logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
				}
			},
		}
	}

	store, err := memory.NewSeeded(cfg.Seed.AdminPassword, cfg.Seed.DemoData)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar armazenamento em memória")
	}
	logrus.Warn("Usando armazenamento em memória: os dados são perdidos ao reiniciar")

	return repositories{
		users:   store,
		stores:  store,
		catalog: store,
		prices:  store,
		backup:  store,
		close:   func() {},
	}
}

// newPreferencesStore usa o Redis quando configurado; se ele não responder cai para a memória
func newPreferencesStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func()) {
	if cfg.Redis.Addr == "" {
		logrus.Info("REDIS_ADDR não definido, preferências em memória")
		return kvstore.NewMemoryStore(), func() {}
	}

	redisStore := kvstore.NewRedisStore(cfg.Redis)
	if err := redisStore.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("Redis indisponível, preferências em memória")
		redisStore.Close()
		return kvstore.NewMemoryStore(), func() {}
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("Preferências armazenadas no Redis")
	return redisStore, func() {
		if err := redisStore.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com Redis")
		}
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
