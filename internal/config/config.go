// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// Env is the application environment ("development", "production").
	Env string `mapstructure:"APP_ENV"`
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	// DatabaseURL is the Postgres DSN. When empty it is assembled from the PG_* keys.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	PGHost      string `mapstructure:"PG_HOST"`
	PGPort      string `mapstructure:"PG_PORT"`
	PGUser      string `mapstructure:"PG_USER"`
	PGPassword  string `mapstructure:"PG_PASSWORD"`
	PGDatabase  string `mapstructure:"PG_DB"`
	// MigrateOnStart applies pending migrations before the server listens.
	MigrateOnStart bool `mapstructure:"MIGRATE_ON_START"`

	// JWTSecret verifies HS256 bearer tokens; JWTIssuer must match the iss claim.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTIssuer string `mapstructure:"JWT_ISSUER"`

	// CacheBackend selects the project cache: "memory" or "redis".
	CacheBackend    string `mapstructure:"CACHE_BACKEND"`
	RedisHost       string `mapstructure:"REDIS_HOST"`
	RedisPort       string `mapstructure:"REDIS_PORT"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	ProjectCacheTTL string `mapstructure:"PROJECT_CACHE_TTL"`

	// PublicRateLimit is requests/second per IP on unauthenticated routes.
	PublicRateLimit float64 `mapstructure:"PUBLIC_RATE_LIMIT"`
	PublicRateBurst int     `mapstructure:"PUBLIC_RATE_BURST"`

	// RoleAuditInterval schedules the role drift audit. "0" disables it.
	RoleAuditInterval string `mapstructure:"ROLE_AUDIT_INTERVAL"`

	// CORSAllowedOrigins is a comma-separated origin list.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()
	setDefaults(v)

	return build(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PG_HOST", "localhost")
	v.SetDefault("PG_PORT", "5432")
	v.SetDefault("PG_USER", "abrigo")
	v.SetDefault("PG_PASSWORD", "")
	v.SetDefault("PG_DB", "abrigo")
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "abrigo-auth")
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("PROJECT_CACHE_TTL", "5m")
	v.SetDefault("PUBLIC_RATE_LIMIT", 1.0)
	v.SetDefault("PUBLIC_RATE_BURST", 5)
	v.SetDefault("ROLE_AUDIT_INTERVAL", "1h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func build(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		return nil, fmt.Errorf("config: CACHE_BACKEND must be memory or redis, got %q", cfg.CacheBackend)
	}
	if cfg.Env == "production" && cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set when APP_ENV=production")
	}
	if cfg.PublicRateLimit <= 0 || cfg.PublicRateBurst < 1 {
		return nil, errors.New("config: PUBLIC_RATE_LIMIT must be > 0 and PUBLIC_RATE_BURST >= 1")
	}

	return &cfg, nil
}

// DSN returns DatabaseURL or assembles one from the PG_* keys.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// RedisAddr returns host:port for the redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// ProjectCacheDuration parses ProjectCacheTTL. Returns 5m if unset or invalid.
func (c *Config) ProjectCacheDuration() time.Duration {
	d, err := time.ParseDuration(c.ProjectCacheTTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// RoleAuditDuration parses RoleAuditInterval. Zero means the audit is off.
func (c *Config) RoleAuditDuration() time.Duration {
	d, err := time.ParseDuration(c.RoleAuditInterval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// AllowedOrigins splits the comma-separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	if c == nil || c.CORSAllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
