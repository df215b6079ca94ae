package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, "abrigo-auth", cfg.JWTIssuer)
	assert.Equal(t, 5*time.Minute, cfg.ProjectCacheDuration())
	assert.Equal(t, "postgres://abrigo:@localhost:5432/abrigo?sslmode=disable", cfg.DSN())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/abrigo")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("PROJECT_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.org, https://b.org,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "postgres://u:p@db:5432/abrigo", cfg.DSN())
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, 30*time.Second, cfg.ProjectCacheDuration())
	assert.Equal(t, []string{"https://a.org", "https://b.org"}, cfg.AllowedOrigins())
}

func TestLoad_RejectsUnknownCacheBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	assert.ErrorContains(t, err, "CACHE_BACKEND")
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
}

func TestProjectCacheDuration_InvalidFallsBack(t *testing.T) {
	cfg := &Config{ProjectCacheTTL: "soon"}
	assert.Equal(t, 5*time.Minute, cfg.ProjectCacheDuration())
}

func TestRoleAuditDuration(t *testing.T) {
	assert.Equal(t, time.Hour, (&Config{RoleAuditInterval: "1h"}).RoleAuditDuration())
	assert.Zero(t, (&Config{RoleAuditInterval: "0"}).RoleAuditDuration())
	assert.Zero(t, (&Config{RoleAuditInterval: "soon"}).RoleAuditDuration())
}
