package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/blaze")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8100, cfg.APIPort)
	assert.Equal(t, 15*time.Second, cfg.PollInterval)
	assert.Equal(t, 24*time.Hour, cfg.ProcessedTTL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 60, cfg.FeedRequestsPerMinute)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/blaze")
	t.Setenv("POLL_INTERVAL_SECONDS", "30")
	t.Setenv("PROCESSED_SET_TTL_HOURS", "6")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 6*time.Hour, cfg.ProcessedTTL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowOrigins)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	assert.Equal(t, 7, envInt("X_INT", 7))

	t.Setenv("X_BOOL", "true")
	assert.True(t, envBool("X_BOOL", false))

	t.Setenv("X_LIST", " , ")
	assert.Equal(t, []string{"fallback"}, envList("X_LIST", []string{"fallback"}))
}
