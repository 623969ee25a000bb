package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Storage     Storage     `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Backup      Backup      `mapstructure:",squash"`
	BulkSession BulkSession `mapstructure:",squash"`
	Seed        Seed        `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // text ou json
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Storage struct {
	Driver string `mapstructure:"storage_driver"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

// Redis é opcional: sem endereço as preferências ficam em memória
type Redis struct {
	Addr               string `mapstructure:"redis_addr"`
	Password           string `mapstructure:"redis_password"`
	DB                 int    `mapstructure:"redis_db"`
	PreferencesChannel string `mapstructure:"redis_preferences_channel"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type Backup struct {
	Version         string `mapstructure:"backup_version"`
	SnapshotDir     string `mapstructure:"backup_snapshot_dir"`
	SnapshotCron    string `mapstructure:"backup_snapshot_cron"`
	SnapshotEnabled bool   `mapstructure:"backup_snapshot_enabled"`
	SnapshotKeep    int    `mapstructure:"backup_snapshot_keep"`
}

type BulkSession struct {
	TTL            time.Duration `mapstructure:"bulk_session_ttl"`
	JanitorCron    string        `mapstructure:"bulk_session_janitor_cron"`
	JanitorEnabled bool          `mapstructure:"bulk_session_janitor_enabled"`
}

type Seed struct {
	AdminPassword string `mapstructure:"seed_admin_password"`
	DemoData      bool   `mapstructure:"seed_demo_data"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("STORAGE_DRIVER", StorageMemory)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/phone_retail?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_PREFERENCES_CHANNEL", "preferences:changes")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("TOKEN_TTL", "24h")

	viper.SetDefault("BACKUP_VERSION", "1.0.0")
	viper.SetDefault("BACKUP_SNAPSHOT_DIR", "./backups")
	viper.SetDefault("BACKUP_SNAPSHOT_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("BACKUP_SNAPSHOT_ENABLED", false)
	viper.SetDefault("BACKUP_SNAPSHOT_KEEP", 7) // 0 mantém todos os arquivos

	viper.SetDefault("BULK_SESSION_TTL", "30m")
	viper.SetDefault("BULK_SESSION_JANITOR_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("BULK_SESSION_JANITOR_ENABLED", true)

	viper.SetDefault("SEED_ADMIN_PASSWORD", "")
	viper.SetDefault("SEED_DEMO_DATA", true)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FORMAT", "text")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	if err := decode(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func decode(config *Config) error {
	return viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("config: STORAGE_DRIVER inválido: %q", c.Storage.Driver)
	}

	switch c.App.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT inválido: %q", c.App.LogFormat)
	}

	if c.Backup.SnapshotKeep < 0 {
		return fmt.Errorf("config: BACKUP_SNAPSHOT_KEEP não pode ser negativo")
	}

	if c.BulkSession.TTL <= 0 {
		return fmt.Errorf("config: BULK_SESSION_TTL deve ser positivo")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL deve ser positivo")
	}

	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
