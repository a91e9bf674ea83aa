// Package config loads server configuration from an optional TOML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	Server    Server    `toml:"server"`
	Providers Providers `toml:"providers"`
	Storage   Storage   `toml:"storage"`
	Image     Image     `toml:"image"`
}

// Server holds HTTP listener settings.
type Server struct {
	Addr            string  `toml:"addr"`
	ReadTimeoutSec  int     `toml:"read_timeout_sec"`
	WriteTimeoutSec int     `toml:"write_timeout_sec"`
	RateLimitPerSec float64 `toml:"rate_limit_per_sec"`
	RateLimitBurst  int     `toml:"rate_limit_burst"`
}

// Providers holds completion provider settings. API keys come from the
// environment only, never from the config file.
type Providers struct {
	AnthropicModel string `toml:"anthropic_model"`
	GeminiModel    string `toml:"gemini_model"`
	SystemPrompt   string `toml:"system_prompt"`

	AnthropicAPIKey string `toml:"-"`
	GeminiAPIKey    string `toml:"-"`
}

// Storage holds persistence settings.
type Storage struct {
	Path string `toml:"path"`
}

// Image holds image generation settings.
type Image struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`

	APIKey string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 300,
			RateLimitPerSec: 5,
			RateLimitBurst:  10,
		},
		Storage: Storage{
			Path: "zeno.db",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (when
// non-empty), and environment overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}

	cfg.Providers.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.Providers.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Image.APIKey = os.Getenv("OPENAI_API_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Providers.AnthropicAPIKey == "" {
		return fmt.Errorf("config: ANTHROPIC_API_KEY is not set")
	}
	if c.Providers.GeminiAPIKey == "" {
		return fmt.Errorf("config: GEMINI_API_KEY is not set")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is empty")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("config: storage.path is empty")
	}
	return nil
}
