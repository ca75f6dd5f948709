package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAMLKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: \"9090\"\ndatabase:\n  driver: sqlite\n  database: dev.db\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg := loadFromYAML(path)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "dev.db", cfg.Database.Database)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "mentorship-system", cfg.JWT.Issuer)
}

func TestLoadFromYAMLFallsBackOnMissingFile(t *testing.T) {
	cfg := loadFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestOverrideWithEnvVars(t *testing.T) {
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("JWT_EXPIRE_TIME", "2h")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("FEED_CACHE_TTL", "10s")
	t.Setenv("DB_PORT", "not-a-number")

	cfg := GetDefaultConfig()
	overrideWithEnvVars(cfg)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Empty(t, cfg.Redis.Host)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10*time.Second, cfg.Feed.CacheTTL)
	assert.Equal(t, 5432, cfg.Database.Port, "unparsable values keep the default")
}

func TestRateLimitCanBeDisabledFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "0")
	cfg := GetDefaultConfig()
	overrideWithEnvVars(cfg)
	assert.Zero(t, cfg.RateLimit.RequestsPerSecond)
}
