package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

type Config struct {
	App         AppConfig
	Store       StoreConfig
	Database    DatabaseConfig
	Sales       SalesConfig
	Log         LogConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Idempotency IdempotencyConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
}

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	Timezone     string
	SeedDemoData bool
}

type StoreConfig struct {
	Driver     string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type SalesConfig struct {
	// UpsertByDate makes a create for a taken date overwrite the day instead of failing
	UpsertByDate bool
}

type LogConfig struct {
	Level  string
	Format string
}

type AuthConfig struct {
	Enabled      bool
	Secret       string
	PasswordHash string
	TokenExpiry  time.Duration
}

type RedisConfig struct {
	URL         string
	SaleLockTTL time.Duration
}

type IdempotencyConfig struct {
	TTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// Load reads configuration from the environment and an optional env file
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	envFile := os.Getenv("APP_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	setDefaults(v)

	return &Config{
		App: AppConfig{
			Name:         v.GetString("APP_NAME"),
			Env:          v.GetString("APP_ENV"),
			Port:         v.GetString("APP_PORT"),
			Timezone:     v.GetString("APP_TIMEZONE"),
			SeedDemoData: v.GetBool("APP_SEED_DEMO_DATA"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(v.GetString("STORE_DRIVER")),
			SQLitePath: v.GetString("SQLITE_DB_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		Sales: SalesConfig{
			UpsertByDate: v.GetBool("SALES_UPSERT_BY_DATE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: AuthConfig{
			Enabled:      v.GetBool("AUTH_ENABLED"),
			Secret:       v.GetString("AUTH_SECRET"),
			PasswordHash: v.GetString("AUTH_PASSWORD_HASH"),
			TokenExpiry:  time.Duration(v.GetInt("AUTH_TOKEN_EXPIRY_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			URL:         v.GetString("REDIS_URL"),
			SaleLockTTL: v.GetDuration("SALE_LOCK_TTL"),
		},
		Idempotency: IdempotencyConfig{
			TTL: time.Duration(v.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "daybook-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_TIMEZONE", "Africa/Khartoum")
	v.SetDefault("APP_SEED_DEMO_DATA", false)
	v.SetDefault("STORE_DRIVER", StoreSQLite)
	v.SetDefault("SQLITE_DB_PATH", "./data/daybook.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "daybook")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Africa/Khartoum")
	v.SetDefault("SALES_UPSERT_BY_DATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("AUTH_SECRET", "")
	v.SetDefault("AUTH_PASSWORD_HASH", "")
	v.SetDefault("AUTH_TOKEN_EXPIRY_HOURS", 24)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SALE_LOCK_TTL", "10s")
	v.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,Authorization,Idempotency-Key")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.App.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.App.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Store.Driver {
	case StorePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			errs = append(errs, "DB_HOST and DB_NAME are required for the postgres store")
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using the sqlite store")
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Sprintf("invalid store driver '%s': must be one of postgres, sqlite, memory", c.Store.Driver))
	}

	if c.Auth.Enabled {
		if c.Auth.Secret == "" {
			errs = append(errs, "AUTH_SECRET is required when auth is enabled")
		}
		if c.Auth.PasswordHash == "" {
			errs = append(errs, "AUTH_PASSWORD_HASH is required when auth is enabled")
		}
		if c.Auth.TokenExpiry <= 0 {
			errs = append(errs, "AUTH_TOKEN_EXPIRY_HOURS must be positive")
		}
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.Duration <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS and RATE_LIMIT_DURATION must be positive")
	}

	if c.Idempotency.TTL <= 0 {
		errs = append(errs, "IDEMPOTENCY_TTL_HOURS must be positive")
	}

	if c.Redis.URL != "" && c.Redis.SaleLockTTL <= 0 {
		errs = append(errs, "SALE_LOCK_TTL must be positive when REDIS_URL is set")
	}

	if len(errs) > 0 {
		return errors.New("configuration validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
