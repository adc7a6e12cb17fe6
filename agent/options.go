package agent

import (
	"github.com/denali-labs/reagent/pkg/llms"
	"github.com/denali-labs/reagent/store"
)

const (
	// DefaultMaxTurns bounds the number of LLM calls per run.
	DefaultMaxTurns = 5
	// DefaultMaxRetries bounds retries of empty LLM responses.
	DefaultMaxRetries = 3
	// DefaultMaxContentSize bounds the accumulated transcript size in bytes.
	DefaultMaxContentSize = 128 * 1024
	// MaxObservationSize caps a single tool observation fed back to the model.
	MaxObservationSize = 8000
)

// Option is a function that can be used to modify the behavior of the Agent Config.
type Option func(*Config)

type Config struct {
	// Name identifies the agent in logs and metrics.
	Name string

	// Model is the model to use in an LLM call.
	Model    string
	modelSet bool

	// MaxTokens is the maximum number of tokens to generate in an LLM call.
	MaxTokens    int
	maxTokensSet bool

	// Temperature is the temperature for sampling in an LLM call, between 0 and 1.
	Temperature    float64
	temperatureSet bool

	// StopWords is a list of words to stop on in an LLM call.
	StopWords    []string
	stopWordsSet bool

	// Seed is a seed for deterministic sampling in an LLM call.
	Seed    int
	seedSet bool

	// MaxTurns is the turn budget: the number of LLM calls per run.
	MaxTurns int

	// MaxRetries bounds retries of empty LLM responses.
	MaxRetries int

	// MaxContentSize bounds the accumulated transcript size in bytes.
	MaxContentSize uint64

	// CallbackHandler observes the reasoning loop.
	CallbackHandler Callback

	// Store keeps the transcript between runs of the same chat.
	Store store.MessageStore
}

func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		Name:           "react",
		MaxTurns:       DefaultMaxTurns,
		MaxRetries:     DefaultMaxRetries,
		MaxContentSize: DefaultMaxContentSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithName sets the agent name used in logs and metrics.
func WithName(name string) Option {
	return func(o *Config) {
		o.Name = name
	}
}

// WithModel is an option for LLM.Call.
func WithModel(model string) Option {
	return func(o *Config) {
		o.Model = model
		o.modelSet = true
	}
}

// WithMaxTokens is an option for LLM.Call.
func WithMaxTokens(maxTokens int) Option {
	return func(o *Config) {
		o.MaxTokens = maxTokens
		o.maxTokensSet = true
	}
}

// WithTemperature is an option for LLM.Call.
func WithTemperature(temperature float64) Option {
	return func(o *Config) {
		o.Temperature = temperature
		o.temperatureSet = true
	}
}

// WithStopWords is an option for setting the stop words for LLM.Call.
func WithStopWords(stopWords []string) Option {
	return func(o *Config) {
		o.StopWords = stopWords
		o.stopWordsSet = true
	}
}

// WithSeed will add an option to use deterministic sampling for LLM.Call.
func WithSeed(seed int) Option {
	return func(o *Config) {
		o.Seed = seed
		o.seedSet = true
	}
}

// WithMaxTurns sets the turn budget per run.
func WithMaxTurns(maxTurns int) Option {
	return func(o *Config) {
		o.MaxTurns = maxTurns
	}
}

// WithMaxContentSize bounds the accumulated transcript size in bytes.
func WithMaxContentSize(size uint64) Option {
	return func(o *Config) {
		o.MaxContentSize = size
	}
}

// WithCallback allows setting a custom Callback Handler.
func WithCallback(callbackHandler Callback) Option {
	return func(o *Config) {
		o.CallbackHandler = callbackHandler
	}
}

// WithStore keeps the transcript between runs of the same chat.
func WithStore(s store.MessageStore) Option {
	return func(o *Config) {
		o.Store = s
	}
}

func (c *Config) GetCallOptions() []llms.CallOption {
	var callOptions []llms.CallOption
	if c.modelSet {
		callOptions = append(callOptions, llms.WithModel(c.Model))
	}
	if c.maxTokensSet {
		callOptions = append(callOptions, llms.WithMaxTokens(c.MaxTokens))
	}
	if c.temperatureSet {
		callOptions = append(callOptions, llms.WithTemperature(c.Temperature))
	}
	if c.stopWordsSet {
		callOptions = append(callOptions, llms.WithStopWords(c.StopWords))
	}
	if c.seedSet {
		callOptions = append(callOptions, llms.WithSeed(c.Seed))
	}
	return callOptions
}
