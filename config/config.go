// Package config loads configuration files and API secrets from the
// environment.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Secrets holds the API keys the agent and its tools read from the
// environment.
type Secrets struct {
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`
	TavilyAPIKey    string `envconfig:"TAVILY_API_KEY"`
	WeatherAPIKey   string `envconfig:"WEATHER_API_KEY"`
}

// LoadEnv loads a .env file into the process environment if one exists,
// then returns the secrets. Variables already set in the environment win.
func LoadEnv() (*Secrets, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.WithMessage(err, "failed to load .env")
	}
	var s Secrets
	if err := envconfig.Process("", &s); err != nil {
		return nil, errors.WithMessage(err, "failed to process environment")
	}
	return &s, nil
}

// Unmarshal decodes a config file into v by extension:
// .yaml/.yml, .toml or .json.
func Unmarshal(file string, v any) error {
	bs, err := os.ReadFile(file)
	if err != nil {
		return errors.WithMessage(err, "failed to read config")
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bs, v)
	case ".toml":
		err = toml.Unmarshal(bs, v)
	case ".json":
		err = json.Unmarshal(bs, v)
	default:
		return errors.Newf("unsupported config format: %s", filepath.Ext(file))
	}
	if err != nil {
		return errors.WithMessagef(err, "failed to parse config: %s", file)
	}
	return nil
}

// UnmarshalAndValidate decodes a config file into v and validates it
// against its struct tags.
func UnmarshalAndValidate(file string, v any) error {
	if err := Unmarshal(file, v); err != nil {
		return err
	}
	if err := validate.Struct(v); err != nil {
		return errors.WithMessagef(err, "invalid config: %s", file)
	}
	return nil
}
