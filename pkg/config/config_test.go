package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to be dev, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.DB.Driver != DriverMemory || cfg.DB.Persistent() {
		t.Fatalf("expected memory driver by default, got %q", cfg.DB.Driver)
	}
	if !cfg.Seed.OnBoot {
		t.Fatalf("expected seeding on boot by default")
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without a url")
	}
	if got := cfg.Media.MaxUploadBytes(); got != 5<<20 {
		t.Fatalf("expected 5MB upload limit, got %d", got)
	}
	if got := cfg.HTTP.ShutdownTimeout; got != 10*time.Second {
		t.Fatalf("expected shutdown timeout 10s, got %v", got)
	}
	if cfg.HTTP.IdempotencyTTL != 24*time.Hour || cfg.HTTP.IdempotencyRequired {
		t.Fatalf("unexpected idempotency defaults ttl=%v required=%v", cfg.HTTP.IdempotencyTTL, cfg.HTTP.IdempotencyRequired)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvSeedOnBoot, "false")
	t.Setenv(EnvMaxUploadMB, "2")
	t.Setenv(EnvCORSOrigins, "http://a.test,http://b.test")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvIdemTTL, "90m")
	t.Setenv(EnvIdemRequired, "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.Redis.Enabled() {
		t.Fatalf("expected redis enabled")
	}
	if cfg.Seed.OnBoot {
		t.Fatalf("expected seeding disabled")
	}
	if got := cfg.Media.MaxUploadBytes(); got != 2<<20 {
		t.Fatalf("expected 2MB upload limit, got %d", got)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 {
		t.Fatalf("expected two cors origins, got %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("expected debug log level, got %q", cfg.App.LogLevel)
	}
	if cfg.HTTP.IdempotencyTTL != 90*time.Minute || !cfg.HTTP.IdempotencyRequired {
		t.Fatalf("unexpected idempotency overrides ttl=%v required=%v", cfg.HTTP.IdempotencyTTL, cfg.HTTP.IdempotencyRequired)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_SQLiteDefaultsPath(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "SQLite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.DB.Driver)
	}
	if cfg.DB.DSN != defaultSQLiteDB {
		t.Fatalf("expected default sqlite file, got %q", cfg.DB.DSN)
	}
}

func TestLoad_PostgresRequiresDSNOrLegacy(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, DriverPostgres)

	if _, err := Load(); err == nil {
		t.Fatal("expected postgres without dsn to fail")
	}

	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBUser, "admin")
	t.Setenv(EnvDBName, "banners")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN != "postgres://admin@localhost:5432/banners?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", cfg.DB.DSN)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "mysql")

	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported driver to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAppEnv, "dev")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
