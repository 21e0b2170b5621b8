package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FOCUSBOT_LLM_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.DefaultModel)
	assert.Empty(t, cfg.LLM.FallbackModels)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, "https://api.exchangerate-api.com/v4/latest", cfg.Currency.BaseURL)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 24*time.Hour, cfg.Session.TokenTTL)
	assert.Equal(t, int64(200), cfg.Upload.MaxFileSizeMB)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FOCUSBOT_LLM_PROVIDER", "claude")
	t.Setenv("FOCUSBOT_LLM_API_KEY", "sk-test")
	t.Setenv("FOCUSBOT_SESSION_TTL", "30m")
	t.Setenv("FOCUSBOT_CURRENCY_BASE_URL", "http://rates.local/latest/")
	t.Setenv("FOCUSBOT_CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("FOCUSBOT_LLM_FALLBACK_MODELS", "claude-3-5-haiku-latest, ,claude-3-haiku-20240307")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "http://rates.local/latest", cfg.Currency.BaseURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"claude-3-5-haiku-latest", "claude-3-haiku-20240307"}, cfg.LLM.FallbackModels)
}

func TestLoad_GoogleAPIKeyFallback(t *testing.T) {
	t.Setenv("FOCUSBOT_LLM_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.LLM.APIKey)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("FOCUSBOT_SERVER_PORT", "")
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "gemini"}}
	assert.ErrorIs(t, cfg.Validate(), config.ErrMissingAPIKey)
}

func TestValidate_VertexNeedsProject(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "vertex", Region: "us-central1"}}
	assert.Error(t, cfg.Validate())

	cfg.LLM.ProjectID = "my-project"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_OK(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "gemini", APIKey: "k"}}
	assert.NoError(t, cfg.Validate())
}
