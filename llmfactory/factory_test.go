package llmfactory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denali-labs/reagent/llmfactory"
	"github.com/denali-labs/reagent/pkg/llms"
)

const yamlConfig = `
default_provider: fast
providers:
  - name: fast
    type: OPENAI
    token: sk-test
    default_model: gpt-4o-mini
  - name: careful
    type: ANTHROPIC
    token: sk-ant-test
    default_model: claude-3-5-haiku-latest
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Load(t *testing.T) {
	f, err := llmfactory.Load(writeConfig(t, "llm.yaml", yamlConfig))
	require.NoError(t, err)

	def, err := f.DefaultModel()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", def.GetName())
	assert.Equal(t, llms.ProviderOpenAI, def.GetProviderType())

	byName, err := f.ModelByName("careful")
	require.NoError(t, err)
	assert.Equal(t, llms.ProviderAnthropic, byName.GetProviderType())

	// cached instances are reused
	again, err := f.ModelByName("careful")
	require.NoError(t, err)
	assert.Same(t, byName, again)

	byType, err := f.ModelByType("openai")
	require.NoError(t, err)
	assert.Equal(t, llms.ProviderOpenAI, byType.GetProviderType())

	_, err = f.ModelByName("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider not found")

	_, err = f.ModelByType("GEMINI")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider not found for type")
}

func Test_Load_TOML(t *testing.T) {
	cfg := `
default_provider = "fast"

[[providers]]
name = "fast"
type = "OPENAI"
token = "sk-test"
default_model = "gpt-4o-mini"
`
	f, err := llmfactory.Load(writeConfig(t, "llm.toml", cfg))
	require.NoError(t, err)

	def, err := f.DefaultModel()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", def.GetName())
}

func Test_Load_InvalidType(t *testing.T) {
	cfg := `
providers:
  - name: bad
    type: GEMINI
`
	_, err := llmfactory.Load(writeConfig(t, "llm.yaml", cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func Test_Load_NoFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	f, err := llmfactory.Load("")
	require.NoError(t, err)

	def, err := f.DefaultModel()
	require.NoError(t, err)
	assert.Equal(t, llms.ProviderOpenAI, def.GetProviderType())
}

func Test_NewLLM_Unsupported(t *testing.T) {
	_, err := llmfactory.NewLLM(&llmfactory.ProviderConfig{Name: "x", Type: "GEMINI"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider type")
}
