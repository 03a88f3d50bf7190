package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "CLEANMART_DB_DSN"
	EnvDBHost = "CLEANMART_DB_HOST"
	EnvDBUser = "CLEANMART_DB_USER"
	EnvDBName = "CLEANMART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Catalog      CatalogConfig
	Resend       ResendConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CLEANMART_APP_ENV" required:"true"`
	Port         string `envconfig:"CLEANMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CLEANMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CLEANMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CLEANMART_DB_DSN"`
	Driver string `envconfig:"CLEANMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CLEANMART_DB_HOST"`
	LegacyPort     int    `envconfig:"CLEANMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CLEANMART_DB_USER"`
	LegacyPassword string `envconfig:"CLEANMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"CLEANMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"CLEANMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CLEANMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CLEANMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CLEANMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CLEANMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CLEANMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CLEANMART_REDIS_ADDR"`
	Password     string        `envconfig:"CLEANMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"CLEANMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CLEANMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CLEANMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CLEANMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CLEANMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CLEANMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig covers verification of tokens minted by the external identity
// provider. The service never issues tokens itself.
type JWTConfig struct {
	Secret string `envconfig:"CLEANMART_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"CLEANMART_JWT_ISSUER" required:"true"`
}

type CatalogConfig struct {
	LowStockThreshold int `envconfig:"CLEANMART_LOW_STOCK_THRESHOLD" default:"5"`
}

type ResendConfig struct {
	APIKey     string `envconfig:"CLEANMART_RESEND_API_KEY"`
	FromEmail  string `envconfig:"CLEANMART_RESEND_FROM_EMAIL" default:"orders@cleanmart.example"`
	ReplyTo    string `envconfig:"CLEANMART_RESEND_REPLY_TO"`
	AdminEmail string `envconfig:"CLEANMART_ADMIN_EMAIL"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CLEANMART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CLEANMART_AUTO_MIGRATE" default:"false"`
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
