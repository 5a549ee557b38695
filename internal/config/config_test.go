package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, ProviderStub, cfg.Provider)
	assert.Equal(t, 5*time.Second, cfg.ReasonerTimeout)
	assert.False(t, cfg.AutoDiagnose)
	assert.Equal(t, "8080", cfg.HTTPPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERENO_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("SERENO_SESSION_TTL", "24h")
	t.Setenv("SERENO_PROVIDER", "openai")
	t.Setenv("SERENO_OPENAI_API_KEY", "k")
	t.Setenv("SERENO_AUTO_DIAGNOSE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.True(t, cfg.AutoDiagnose)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("SERENO_PROVIDER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
