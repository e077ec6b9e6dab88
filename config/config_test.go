package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"TOKEN",
	"PREFIX",
	"ENVIRONMENT",
	"WORKER_COUNT",
	"ENRICHMENT_TIMEOUT",
	"WEATHERSTACK_KEY",
	"ANTHROPIC_API_KEY",
	"ANTHROPIC_MODEL",
	"SLACK_ALERT_WEBHOOK_URL",
	"HEALTH_PORT",
	"HEALTH_CORS_ALLOWED_ORIGINS",
}

// clearEnv blanks every key LoadConfig reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN", "secret-token")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.Token)
	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 10*time.Second, cfg.EnrichmentTimeout)
	assert.False(t, cfg.WeatherConfig.IsConfigured())
	assert.False(t, cfg.AnthropicConfig.IsConfigured())
	assert.False(t, cfg.AlertConfig.IsConfigured())
	assert.False(t, cfg.HealthConfig.IsConfigured())
	assert.Equal(t, "*", cfg.HealthConfig.CORSAllowedOrigins)
}

func TestLoadConfig_MissingToken(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(missingEnvFile(t))

	assert.Nil(t, cfg)
	assert.EqualError(t, err, "TOKEN is not set")
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "TOKEN=file-token\nPREFIX=?\nWEATHERSTACK_KEY=wk\nANTHROPIC_API_KEY=ak\nHEALTH_PORT=8081\nWORKER_COUNT=2\nENRICHMENT_TIMEOUT=3s\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "?", cfg.Prefix)
	assert.Equal(t, "wk", cfg.WeatherConfig.APIKey)
	assert.True(t, cfg.AnthropicConfig.IsConfigured())
	assert.Equal(t, "8081", cfg.HealthConfig.Port)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 3*time.Second, cfg.EnrichmentTimeout)

	// godotenv.Load sets real env vars; clean them for the next test
	clearEnv(t)
}

func TestLoadConfig_ProcessEnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TOKEN=file-token\n"), 0o600))
	t.Setenv("TOKEN", "env-token")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
}

func TestLoadConfig_InvalidNumbers(t *testing.T) {
	t.Run("worker count", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TOKEN", "t")
		t.Setenv("WORKER_COUNT", "zero")

		_, err := LoadConfig(missingEnvFile(t))
		assert.ErrorContains(t, err, "WORKER_COUNT")
	})

	t.Run("enrichment timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TOKEN", "t")
		t.Setenv("ENRICHMENT_TIMEOUT", "soon")

		_, err := LoadConfig(missingEnvFile(t))
		assert.ErrorContains(t, err, "ENRICHMENT_TIMEOUT")
	})
}
