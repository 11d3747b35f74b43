package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GAMEDEN_APP_ENV" required:"true"`
	Port         string `envconfig:"GAMEDEN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GAMEDEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GAMEDEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"GAMEDEN_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"GAMEDEN_DB_DSN"`
	Driver string `envconfig:"GAMEDEN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GAMEDEN_DB_HOST"`
	LegacyPort     int    `envconfig:"GAMEDEN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GAMEDEN_DB_USER"`
	LegacyPassword string `envconfig:"GAMEDEN_DB_PASSWORD"`
	LegacyName     string `envconfig:"GAMEDEN_DB_NAME"`
	LegacySSLMode  string `envconfig:"GAMEDEN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GAMEDEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GAMEDEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GAMEDEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GAMEDEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GAMEDEN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GAMEDEN_REDIS_ADDR"`
	Password     string        `envconfig:"GAMEDEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"GAMEDEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GAMEDEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GAMEDEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GAMEDEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GAMEDEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GAMEDEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig tunes catalog read/write behavior.
type CatalogConfig struct {
	IdempotencyTTL  time.Duration `envconfig:"GAMEDEN_CATALOG_IDEMPOTENCY_TTL" default:"24h"`
	MaxOptionValues int           `envconfig:"GAMEDEN_CATALOG_MAX_OPTION_VALUES" default:"50"`
	MaxVariants     int           `envconfig:"GAMEDEN_CATALOG_MAX_VARIANTS" default:"500"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"GAMEDEN_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"GAMEDEN_CRON_LOCK_TTL" default:"25h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GAMEDEN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GAMEDEN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
