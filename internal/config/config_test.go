package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testYAML = `server:
  host: "127.0.0.1"
  port: 3000
  mode: "release"
database:
  driver: "postgres"
  sqlite:
    path: "data/test.db"
  postgres:
    host: "db.example.com"
    port: 5433
    user: "admin"
    password: "secret"
    dbname: "testdb"
    sslmode: "require"
  pool:
    max_idle_conns: 5
    max_open_conns: 50
    conn_max_lifetime: "30m"
log:
  level: "info"
  format: "json"
import:
  max_upload_mb: 4
auth:
  enabled: true
  jwt_secret: "Change-Me-0123456789-0123456789!"
  token_expiry: "24h"
  public_paths:
    - "/api/v1/auth/login"
    - "/api/v1/auth/register"
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_FullYAML(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Server.Mode = %q, want %q", cfg.Server.Mode, "release")
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "postgres")
	}
	if cfg.Database.Postgres.Host != "db.example.com" {
		t.Errorf("Postgres.Host = %q, want %q", cfg.Database.Postgres.Host, "db.example.com")
	}
	if cfg.Database.Pool.MaxOpenConns != 50 {
		t.Errorf("Pool.MaxOpenConns = %d, want %d", cfg.Database.Pool.MaxOpenConns, 50)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled = false, want true")
	}
	if cfg.Auth.TokenExpiry != "24h" {
		t.Errorf("Auth.TokenExpiry = %q, want %q", cfg.Auth.TokenExpiry, "24h")
	}
	if len(cfg.Auth.PublicPaths) != 2 {
		t.Errorf("Auth.PublicPaths = %v", cfg.Auth.PublicPaths)
	}
	if cfg.Import.MaxUploadMB != 4 {
		t.Errorf("Import.MaxUploadMB = %d, want %d", cfg.Import.MaxUploadMB, 4)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__DATABASE__DRIVER", "sqlite")
	t.Setenv("APP__LOG__LEVEL", "error")
	t.Setenv("APP__DATABASE__POOL__MAX_IDLE_CONNS", "20")
	t.Setenv("APP__AUTH__TOKEN_EXPIRY", "1h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "error")
	}
	if cfg.Database.Pool.MaxIdleConns != 20 {
		t.Errorf("Pool.MaxIdleConns = %d, want %d", cfg.Database.Pool.MaxIdleConns, 20)
	}
	if cfg.Auth.TokenExpiry != "1h" {
		t.Errorf("Auth.TokenExpiry = %q, want %q", cfg.Auth.TokenExpiry, "1h")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

// validConfig returns a Config that passes Validate, for mutation in table tests.
func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{Path: "data/test.db"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Auth: AuthConfig{
			Enabled:     true,
			JWTSecret:   "change-me-0123456789-0123456789!",
			TokenExpiry: "24h",
			PublicPaths: []string{"/api/v1/auth/login", "/api/v1/auth/register"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid mode", func(c *Config) { c.Server.Mode = "production" }, "server.mode"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"missing host", func(c *Config) { c.Server.Host = "  " }, "server.host"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"sqlite without path", func(c *Config) { c.Database.SQLite.Path = "" }, "database.sqlite.path"},
		{"bad timeout", func(c *Config) { c.Server.Timeout = "soon" }, "server.timeout"},
		{"negative pool lifetime", func(c *Config) { c.Database.Pool.ConnMaxLifetime = "-1h" }, "conn_max_lifetime"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"auth secret missing", func(c *Config) { c.Auth.JWTSecret = "" }, "auth.jwt_secret"},
		{"auth secret too short", func(c *Config) { c.Auth.JWTSecret = "short" }, "auth.jwt_secret"},
		{"auth expiry missing", func(c *Config) { c.Auth.TokenExpiry = "" }, "auth.token_expiry"},
		{"auth expiry negative", func(c *Config) { c.Auth.TokenExpiry = "-1h" }, "auth.token_expiry"},
		{"public path without slash", func(c *Config) { c.Auth.PublicPaths = []string{"api/v1/auth/login"} }, "public_paths"},
		{"missing required public path", func(c *Config) { c.Auth.PublicPaths = []string{"/api/v1/auth/login"} }, "public_paths"},
		{"negative upload cap", func(c *Config) { c.Import.MaxUploadMB = -1 }, "import.max_upload_mb"},
		{"auth disabled skips auth checks", func(c *Config) {
			c.Auth = AuthConfig{Enabled: false}
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UploadCapDefault(t *testing.T) {
	cfg := validConfig()
	cfg.Import.MaxUploadMB = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Import.MaxUploadMB != 8 {
		t.Errorf("MaxUploadMB = %d; want default 8", cfg.Import.MaxUploadMB)
	}
	if got := cfg.Import.MaxUploadBytes(); got != 8<<20 {
		t.Errorf("MaxUploadBytes() = %d; want %d", got, int64(8<<20))
	}
}

func TestValidate_PostgresRequirements(t *testing.T) {
	base := func() Config {
		cfg := validConfig()
		cfg.Database.Driver = "postgres"
		cfg.Database.Postgres = PostgresConfig{
			Host:    "db.example.com",
			Port:    5432,
			User:    "admin",
			DBName:  "app",
			SSLMode: "require",
		}
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		cfg := base()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := base()
		cfg.Database.Postgres.Host = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad sslmode", func(t *testing.T) {
		cfg := base()
		cfg.Database.Postgres.SSLMode = "whatever"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("release mode forbids disable", func(t *testing.T) {
		cfg := base()
		cfg.Server.Mode = "release"
		cfg.Database.Postgres.SSLMode = "disable"
		cfg.Auth.JWTSecret = "Change-Me-0123456789-0123456789!"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error")
		}
	})
}

func TestValidate_ReleaseModeSecretClasses(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Mode = "release"
	cfg.Auth.JWTSecret = strings.Repeat("a", 40) // single character class

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "character classes") {
		t.Errorf("expected character class error, got %v", err)
	}

	cfg.Auth.JWTSecret = "Change-Me-0123456789-0123456789!"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestCountSecretClasses(t *testing.T) {
	tests := []struct {
		secret string
		want   int
	}{
		{"", 0},
		{"lower", 1},
		{"lowerUPPER", 2},
		{"lowerUPPER123", 3},
		{"lowerUPPER123!@#", 4},
	}
	for _, tt := range tests {
		if got := CountSecretClasses(tt.secret); got != tt.want {
			t.Errorf("CountSecretClasses(%q) = %d, want %d", tt.secret, got, tt.want)
		}
	}
}

func TestValidate_DeduplicatesPublicPaths(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.PublicPaths = []string{
		"/api/v1/auth/login",
		"/api/v1/auth/login",
		"/api/v1/auth/register",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if len(cfg.Auth.PublicPaths) != 2 {
		t.Errorf("PublicPaths = %v; want duplicates removed", cfg.Auth.PublicPaths)
	}
}
