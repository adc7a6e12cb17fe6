package llmfactory

import (
	"github.com/denali-labs/reagent/config"
	"github.com/denali-labs/reagent/pkg/llms"
)

type Config struct {
	// DefaultProvider names the provider used when none is requested.
	// Empty means the first configured provider.
	DefaultProvider string `json:"default_provider,omitempty" yaml:"default_provider,omitempty" toml:"default_provider"`

	Providers []*ProviderConfig `json:"providers" yaml:"providers" toml:"providers" validate:"required,dive"`
}

// ProviderConfig describes one LLM provider.
type ProviderConfig struct {
	Name string `json:"name" yaml:"name" toml:"name" validate:"required"`
	// Type of the provider: OPENAI or ANTHROPIC.
	Type string `json:"type" yaml:"type" toml:"type" validate:"required,oneof=OPENAI ANTHROPIC"`
	// Token is the API key. Empty means the provider's environment variable.
	Token           string   `json:"token,omitempty" yaml:"token,omitempty" toml:"token"`
	DefaultModel    string   `json:"default_model,omitempty" yaml:"default_model,omitempty" toml:"default_model"`
	AvailableModels []string `json:"available_models,omitempty" yaml:"available_models,omitempty" toml:"available_models"`
	BaseURL         string   `json:"base_url,omitempty" yaml:"base_url,omitempty" toml:"base_url"`
	// OrgID specifies which organization's quota and billing should be used
	// when making API requests. OpenAI only.
	OrgID string `json:"org_id,omitempty" yaml:"org_id,omitempty" toml:"org_id"`
}

// LoadConfig from file
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		// no file, a single provider per environment keys
		cfg.Providers = []*ProviderConfig{
			{Name: "openai", Type: string(llms.ProviderOpenAI)},
		}
		return cfg, nil
	}

	if err := config.UnmarshalAndValidate(file, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
