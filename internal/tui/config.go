package tui

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ClientConfig is the terminal client configuration.
type ClientConfig struct {
	ServerURL   string `yaml:"server_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// Timeout returns the per-request timeout.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// LoadConfig reads a config from path. A missing file yields defaults.
func LoadConfig(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// LoadDefaultConfig tries ./focusbot.yaml first, then
// ~/.config/focusbot/client.yaml, and falls back to defaults. The returned
// path is empty when no file was found.
func LoadDefaultConfig() (*ClientConfig, string, error) {
	candidates := []string{"focusbot.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "focusbot", "client.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			return cfg, path, err
		}
	}
	return defaultConfig(), "", nil
}

func defaultConfig() *ClientConfig {
	return &ClientConfig{ServerURL: "http://localhost:8080", TimeoutSecs: 180}
}

func applyDefaults(cfg *ClientConfig) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8080"
	}
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = 180
	}
}
