package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "sympathy")
	t.Setenv("DB_NAME", "sympathy")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15, cfg.RateLimit.MatchDailyLimit)
	assert.Equal(t, 24*time.Hour, cfg.RateLimit.Window)
	assert.Equal(t, time.Minute, cfg.Cache.ListTTL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5, cfg.Redis.MinIdleConns)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddr())
}

func TestLoadRedisOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_POOL_SIZE", "50")
	t.Setenv("REDIS_MIN_IDLE_CONNS", "20")
	t.Setenv("REDIS_DIAL_TIMEOUT_SEC", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Redis.PoolSize)
	assert.Equal(t, 20, cfg.Redis.MinIdleConns)
	assert.Equal(t, 2*time.Second, cfg.Redis.DialTimeout)
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		DBName: "sympathy", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=u password=p dbname=sympathy sslmode=disable",
		cfg.GetDSN())
}
