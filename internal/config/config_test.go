package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("port = %q", cfg.App.Port)
	}
	if cfg.Store.Driver != StoreSQLite {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if cfg.App.Timezone != "Africa/Khartoum" {
		t.Errorf("timezone = %q", cfg.App.Timezone)
	}
	if cfg.Idempotency.TTL != 24*time.Hour {
		t.Errorf("idempotency ttl = %v", cfg.Idempotency.TTL)
	}
	if cfg.Redis.SaleLockTTL != 10*time.Second {
		t.Errorf("lock ttl = %v", cfg.Redis.SaleLockTTL)
	}
	if len(cfg.CORS.AllowedMethods) != 5 {
		t.Errorf("cors methods = %v", cfg.CORS.AllowedMethods)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadEnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_PORT=9090\nSTORE_DRIVER=memory\nSALES_UPSERT_BY_DATE=true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("APP_ENV_FILE", path)
	t.Setenv("APP_PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Port != "7070" {
		t.Errorf("process env should win, port = %q", cfg.App.Port)
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if !cfg.Sales.UpsertByDate {
		t.Error("upsert flag should come from the env file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:         AppConfig{Port: "8080"},
			Store:       StoreConfig{Driver: StoreMemory},
			RateLimit:   RateLimitConfig{Requests: 10, Duration: 60},
			Idempotency: IdempotencyConfig{TTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.App.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.App.Port = "70000" }, "between 1 and 65535"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mongo" }, "invalid store driver"},
		{"sqlite without path", func(c *Config) { c.Store.Driver = StoreSQLite }, "SQLite database path"},
		{"auth without secret", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, PasswordHash: "x", TokenExpiry: time.Hour}
		}, "AUTH_SECRET"},
		{"no rate limit", func(c *Config) { c.RateLimit.Requests = 0 }, "RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
