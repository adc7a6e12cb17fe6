package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denali-labs/reagent/config"
)

type testConfig struct {
	Name     string `json:"name" yaml:"name" toml:"name" validate:"required"`
	MaxTurns int    `json:"max_turns" yaml:"max_turns" toml:"max_turns" validate:"gte=1"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Unmarshal(t *testing.T) {
	tcases := []struct {
		name    string
		content string
	}{
		{"cfg.yaml", "name: react\nmax_turns: 5\n"},
		{"cfg.yml", "name: react\nmax_turns: 5\n"},
		{"cfg.toml", "name = \"react\"\nmax_turns = 5\n"},
		{"cfg.json", `{"name": "react", "max_turns": 5}`},
	}
	for _, tc := range tcases {
		var cfg testConfig
		err := config.Unmarshal(writeFile(t, tc.name, tc.content), &cfg)
		require.NoError(t, err, "file: %s", tc.name)
		assert.Equal(t, "react", cfg.Name, "file: %s", tc.name)
		assert.Equal(t, 5, cfg.MaxTurns, "file: %s", tc.name)
	}
}

func Test_Unmarshal_Errors(t *testing.T) {
	var cfg testConfig

	err := config.Unmarshal(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")

	err = config.Unmarshal(writeFile(t, "cfg.ini", "name=react"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format: .ini")

	err = config.Unmarshal(writeFile(t, "cfg.yaml", ":\tnot yaml"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func Test_UnmarshalAndValidate(t *testing.T) {
	var cfg testConfig
	err := config.UnmarshalAndValidate(writeFile(t, "cfg.yaml", "name: react\nmax_turns: 5\n"), &cfg)
	require.NoError(t, err)

	err = config.UnmarshalAndValidate(writeFile(t, "cfg.yaml", "max_turns: 0\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func Test_LoadEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("TAVILY_API_KEY", "tvly-test")
	t.Setenv("WEATHER_API_KEY", "")

	s, err := config.LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", s.OpenAIAPIKey)
	assert.Empty(t, s.AnthropicAPIKey)
	assert.Equal(t, "tvly-test", s.TavilyAPIKey)
}
