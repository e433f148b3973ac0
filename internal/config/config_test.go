package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "15:30", cfg.SimBase)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 120, cfg.RateLimitPerWindow)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SIM_BASE_TIME", "06:00")
	t.Setenv("TICK_INTERVAL", "30s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "06:00", cfg.SimBase)
	assert.Equal(t, 30*time.Second, cfg.TickInterval)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, []string{"1.1.1.1", "2.2.2.2"}, cfg.RateLimitWhitelist)
}

func TestLoadRejectsBadBaseTime(t *testing.T) {
	t.Setenv("SIM_BASE_TIME", "25:99")
	_, err := Load()
	assert.Error(t, err)
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "not-a-duration")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("REDIS_DB", "seven")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 0, cfg.RedisDB)
}
