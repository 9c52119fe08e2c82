package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "LOG_LEVEL", "STORE_KIND", "POSTGRES_URL", "POSTGRES_TABLE", "REDIS_ADDR",
	"REDIS_PASSWORD", "REDIS_DB", "REDIS_PREFIX", "STORE_KEY_VERSION", "GEMINI_API_KEY",
	"API_KEY", "GEMINI_MODEL", "ADVISOR_TIMEOUT", "RECENT_TRANSACTIONS",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "memory", cfg.Store.Kind)
	assert.Equal(t, "kv_store", cfg.Store.PostgresTable)
	assert.Equal(t, "v3", cfg.KeyVersion)
	assert.Equal(t, 30*time.Second, cfg.AdvisorTimeout)
	assert.Equal(t, 10, cfg.RecentTransactions)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_KIND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("ADVISOR_TIMEOUT", "5")
	t.Setenv("STORE_KEY_VERSION", "v4")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store.Kind)
	assert.Equal(t, 3, cfg.Store.RedisDB)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "legacy-key", cfg.GeminiAPIKey)
	assert.Equal(t, 5*time.Second, cfg.AdvisorTimeout)
	assert.Equal(t, "v4", cfg.KeyVersion)

	t.Setenv("GEMINI_API_KEY", "primary-key")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "primary-key", cfg.GeminiAPIKey)
}

func TestFromEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "two")
	_, err := FromEnv()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that exist, even empty ones
	os.Unsetenv("PORT")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9191\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.Port)
}
