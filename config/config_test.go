package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Dushyant-2004/Zeno/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "ak")
	t.Setenv("GEMINI_API_KEY", "gk")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "zeno.db", cfg.Storage.Path)
	assert.Equal(t, float64(5), cfg.Server.RateLimitPerSec)
	assert.Equal(t, "ak", cfg.Providers.AnthropicAPIKey)
	assert.Equal(t, "gk", cfg.Providers.GeminiAPIKey)
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "ak")
	t.Setenv("GEMINI_API_KEY", "gk")

	path := filepath.Join(t.TempDir(), "zeno.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9090"

[providers]
anthropic_model = "claude-test"
system_prompt = "Be terse."

[storage]
path = "/tmp/zeno-test.db"
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "claude-test", cfg.Providers.AnthropicModel)
	assert.Equal(t, "Be terse.", cfg.Providers.SystemPrompt)
	assert.Equal(t, "/tmp/zeno-test.db", cfg.Storage.Path)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSec, "unset values keep their defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "ak")
	t.Setenv("GEMINI_API_KEY", "gk")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gk")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}
