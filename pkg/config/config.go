package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BANNERS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	EnvAppEnv       = "BANNERS_APP_ENV"
	EnvPort         = "BANNERS_APP_PORT"
	EnvLogLevel     = "BANNERS_LOG_LEVEL"
	EnvDBDriver     = "BANNERS_DB_DRIVER"
	EnvDBDSN        = "BANNERS_DB_DSN"
	EnvDBHost       = "BANNERS_DB_HOST"
	EnvDBUser       = "BANNERS_DB_USER"
	EnvDBName       = "BANNERS_DB_NAME"
	EnvRedisURL     = "BANNERS_REDIS_URL"
	EnvSeedFile     = "BANNERS_SEED_FILE"
	EnvSeedOnBoot   = "BANNERS_SEED_ON_BOOT"
	EnvMaxUploadMB  = "BANNERS_MAX_UPLOAD_MB"
	EnvCORSOrigins  = "BANNERS_CORS_ORIGINS"
	EnvIdemTTL      = "BANNERS_IDEMPOTENCY_TTL"
	EnvIdemRequired = "BANNERS_IDEMPOTENCY_REQUIRED"
	EnvAutoMigrate  = "BANNERS_AUTO_MIGRATE"
	EnvSQLitePath   = "BANNERS_SQLITE_PATH"
	defaultSQLiteDB = "banners.db"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Seed         SeedConfig
	Media        MediaConfig
	HTTP         HTTPConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BANNERS_APP_ENV" required:"true"`
	Port         string `envconfig:"BANNERS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BANNERS_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"BANNERS_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"BANNERS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver     string `envconfig:"BANNERS_DB_DRIVER" default:"memory"`
	DSN        string `envconfig:"BANNERS_DB_DSN"`
	SQLitePath string `envconfig:"BANNERS_SQLITE_PATH"`

	LegacyHost     string `envconfig:"BANNERS_DB_HOST"`
	LegacyPort     int    `envconfig:"BANNERS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BANNERS_DB_USER"`
	LegacyPassword string `envconfig:"BANNERS_DB_PASSWORD"`
	LegacyName     string `envconfig:"BANNERS_DB_NAME"`
	LegacySSLMode  string `envconfig:"BANNERS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BANNERS_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"BANNERS_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"BANNERS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BANNERS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Persistent reports whether banners are stored outside the process.
func (db DBConfig) Persistent() bool {
	return db.Driver != DriverMemory
}

type RedisConfig struct {
	URL          string        `envconfig:"BANNERS_REDIS_URL"`
	Address      string        `envconfig:"BANNERS_REDIS_ADDR"`
	Password     string        `envconfig:"BANNERS_REDIS_PASSWORD"`
	DB           int           `envconfig:"BANNERS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BANNERS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BANNERS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BANNERS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BANNERS_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"BANNERS_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type SeedConfig struct {
	File   string `envconfig:"BANNERS_SEED_FILE"`
	OnBoot bool   `envconfig:"BANNERS_SEED_ON_BOOT" default:"true"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"BANNERS_MAX_UPLOAD_MB" default:"5"`
}

// MaxUploadBytes returns the upload ceiling in bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	if m.MaxUploadMB <= 0 {
		return 5 << 20
	}
	return int64(m.MaxUploadMB) << 20
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"BANNERS_CORS_ORIGINS" default:"http://localhost:3000"`
	ReadTimeout     time.Duration `envconfig:"BANNERS_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"BANNERS_HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"BANNERS_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`

	// IdempotencyRequired rejects a create without an Idempotency-Key once
	// Redis is configured.
	IdempotencyTTL      time.Duration `envconfig:"BANNERS_IDEMPOTENCY_TTL" default:"24h"`
	IdempotencyRequired bool          `envconfig:"BANNERS_IDEMPOTENCY_REQUIRED" default:"false"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BANNERS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) normalize() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	switch db.Driver {
	case DriverMemory:
		return nil
	case DriverSQLite:
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		if db.DSN == "" {
			db.DSN = defaultSQLiteDB
		}
		return nil
	case DriverPostgres:
		return db.ensureDSN()
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
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
