package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by Validate when no model API key is configured.
var ErrMissingAPIKey = errors.New("llm api key is not set (FOCUSBOT_LLM_API_KEY or GOOGLE_API_KEY)")

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Currency CurrencyConfig
	Upload   UploadConfig
	Session  SessionConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// LLMConfig holds settings for the language model provider.
type LLMConfig struct {
	Provider       string   `mapstructure:"provider"`
	APIKey         string   `mapstructure:"api_key"`
	DefaultModel   string   `mapstructure:"default_model"`
	FallbackModels []string `mapstructure:"fallback_models"`
	Temperature    float64  `mapstructure:"temperature"`
	TimeoutSecs    int      `mapstructure:"timeout_secs"`
	ProjectID      string   `mapstructure:"project_id"`
	Region         string   `mapstructure:"region"`
}

// CurrencyConfig holds exchange rate API settings.
type CurrencyConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// UploadConfig holds document upload limits. Zero means unlimited.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// SessionConfig holds in-memory session settings.
type SessionConfig struct {
	Secret        string        `mapstructure:"secret"`
	TTL           time.Duration `mapstructure:"ttl"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	Issuer        string        `mapstructure:"issuer"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Validate checks settings that must be supplied by the hosting environment.
func (c *Config) Validate() error {
	if c.LLM.Provider == "vertex" {
		if c.LLM.ProjectID == "" || c.LLM.Region == "" {
			return errors.New("llm provider vertex requires FOCUSBOT_LLM_PROJECT_ID and FOCUSBOT_LLM_REGION")
		}
		return nil
	}
	if c.LLM.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Load reads configuration from environment variables with the FOCUSBOT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FOCUSBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// LLM defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.default_model", "gemini-1.5-flash")
	v.SetDefault("llm.fallback_models", "")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.project_id", "")
	v.SetDefault("llm.region", "us-central1")

	// Currency defaults
	v.SetDefault("currency.base_url", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("currency.timeout_secs", 15)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 200)

	// Session defaults
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.token_ttl", "24h")
	v.SetDefault("session.sweep_interval", "1m")
	v.SetDefault("session.issuer", "focusbot")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8501")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "FOCUSBOT_SERVER_PORT",
		"server.read_timeout":     "FOCUSBOT_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "FOCUSBOT_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout": "FOCUSBOT_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":      "FOCUSBOT_SERVER_ENVIRONMENT",
		"llm.provider":            "FOCUSBOT_LLM_PROVIDER",
		"llm.api_key":             "FOCUSBOT_LLM_API_KEY",
		"llm.default_model":       "FOCUSBOT_LLM_DEFAULT_MODEL",
		"llm.fallback_models":     "FOCUSBOT_LLM_FALLBACK_MODELS",
		"llm.temperature":         "FOCUSBOT_LLM_TEMPERATURE",
		"llm.timeout_secs":        "FOCUSBOT_LLM_TIMEOUT_SECS",
		"llm.project_id":          "FOCUSBOT_LLM_PROJECT_ID",
		"llm.region":              "FOCUSBOT_LLM_REGION",
		"currency.base_url":       "FOCUSBOT_CURRENCY_BASE_URL",
		"currency.timeout_secs":   "FOCUSBOT_CURRENCY_TIMEOUT_SECS",
		"upload.max_file_size_mb": "FOCUSBOT_UPLOAD_MAX_FILE_SIZE_MB",
		"session.secret":          "FOCUSBOT_SESSION_SECRET",
		"session.ttl":             "FOCUSBOT_SESSION_TTL",
		"session.token_ttl":       "FOCUSBOT_SESSION_TOKEN_TTL",
		"session.sweep_interval":  "FOCUSBOT_SESSION_SWEEP_INTERVAL",
		"session.issuer":          "FOCUSBOT_SESSION_ISSUER",
		"cors.allowed_origins":    "FOCUSBOT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FOCUSBOT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FOCUSBOT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}

	// Accept GOOGLE_API_KEY when the prefixed key is unset.
	apiKey := v.GetString("llm.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	cfg.LLM = LLMConfig{
		Provider:       v.GetString("llm.provider"),
		APIKey:         apiKey,
		DefaultModel:   v.GetString("llm.default_model"),
		FallbackModels: splitList(v.GetString("llm.fallback_models")),
		Temperature:    v.GetFloat64("llm.temperature"),
		TimeoutSecs:    v.GetInt("llm.timeout_secs"),
		ProjectID:      v.GetString("llm.project_id"),
		Region:         v.GetString("llm.region"),
	}
	cfg.Currency = CurrencyConfig{
		BaseURL:     strings.TrimRight(v.GetString("currency.base_url"), "/"),
		TimeoutSecs: v.GetInt("currency.timeout_secs"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Session = SessionConfig{
		Secret:        v.GetString("session.secret"),
		TTL:           v.GetDuration("session.ttl"),
		TokenTTL:      v.GetDuration("session.token_ttl"),
		SweepInterval: v.GetDuration("session.sweep_interval"),
		Issuer:        v.GetString("session.issuer"),
	}

	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
