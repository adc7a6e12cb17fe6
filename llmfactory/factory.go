// Package llmfactory constructs and caches LLM providers from config.
package llmfactory

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"

	"github.com/denali-labs/reagent/pkg/llms"
	"github.com/denali-labs/reagent/pkg/llms/anthropic"
	"github.com/denali-labs/reagent/pkg/llms/openai"
)

var logger = xlog.NewPackageLogger("github.com/denali-labs/reagent", "llmfactory")

type Factory interface {
	DefaultModel() (llms.Model, error)
	ModelByType(typ string) (llms.Model, error)
	ModelByName(name string) (llms.Model, error)
}

// Load returns a factory for the providers configured in the file.
func Load(location string) (Factory, error) {
	cfg, err := LoadConfig(location)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

type factory struct {
	cfg *Config

	byType map[string]llms.Model
	byName map[string]llms.Model
	lock   sync.Mutex
}

// New creates a new LLM factory
func New(cfg *Config) Factory {
	f := &factory{
		cfg:    cfg,
		byType: make(map[string]llms.Model),
		byName: make(map[string]llms.Model),
	}
	return f
}

// NewLLM creates a provider client from its config.
func NewLLM(cfg *ProviderConfig) (llms.Model, error) {
	switch typ := strings.ToUpper(cfg.Type); llms.ProviderType(typ) {
	case llms.ProviderOpenAI:
		var opts []openai.Option
		if cfg.Token != "" {
			opts = append(opts, openai.WithToken(cfg.Token))
		}
		if cfg.DefaultModel != "" {
			opts = append(opts, openai.WithModel(cfg.DefaultModel))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		if cfg.OrgID != "" {
			opts = append(opts, openai.WithOrganization(cfg.OrgID))
		}
		return openai.New(opts...)

	case llms.ProviderAnthropic:
		var opts []anthropic.Option
		if cfg.Token != "" {
			opts = append(opts, anthropic.WithToken(cfg.Token))
		}
		if cfg.DefaultModel != "" {
			opts = append(opts, anthropic.WithModel(cfg.DefaultModel))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		return anthropic.New(opts...)

	default:
		return nil, errors.Newf("unsupported provider type: %s", cfg.Type)
	}
}

// DefaultModel returns the configured default provider, or the first one.
func (f *factory) DefaultModel() (llms.Model, error) {
	if len(f.cfg.Providers) == 0 {
		return nil, errors.New("no providers configured")
	}
	name := f.cfg.DefaultProvider
	if name == "" {
		name = f.cfg.Providers[0].Name
	}
	return f.ModelByName(name)
}

func (f *factory) ModelByType(typ string) (llms.Model, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	typ = strings.ToUpper(typ)
	if client, ok := f.byType[typ]; ok {
		return client, nil
	}

	for _, cfg := range f.cfg.Providers {
		if strings.ToUpper(cfg.Type) == typ {
			model, err := NewLLM(cfg)
			if err != nil {
				return nil, err
			}

			logger.KV(xlog.DEBUG,
				"status", "created_llm",
				"type", cfg.Type,
				"name", cfg.Name,
				"model", model.GetName(),
			)

			f.byType[typ] = model
			f.byName[cfg.Name] = model
			return model, nil
		}
	}
	return nil, errors.Newf("provider not found for type: %s", typ)
}

func (f *factory) ModelByName(name string) (llms.Model, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if client, ok := f.byName[name]; ok {
		return client, nil
	}

	for _, cfg := range f.cfg.Providers {
		if cfg.Name == name {
			model, err := NewLLM(cfg)
			if err != nil {
				return nil, err
			}

			logger.KV(xlog.DEBUG,
				"status", "created_llm",
				"type", cfg.Type,
				"name", cfg.Name,
				"model", model.GetName(),
			)

			f.byName[name] = model
			return model, nil
		}
	}
	return nil, errors.Newf("provider not found: %s", name)
}
