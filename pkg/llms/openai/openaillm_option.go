package openai

import (
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
)

const (
	tokenEnvVarName   = "OPENAI_API_KEY"  //nolint:gosec
	modelEnvVarName   = "OPENAI_MODEL"    //nolint:gosec
	baseURLEnvVarName = "OPENAI_BASE_URL" //nolint:gosec
)

// DefaultModel is used when neither the option nor the environment names one.
const DefaultModel = "gpt-4o-mini"

type options struct {
	token        string
	model        string
	baseURL      string
	organization string
	httpClient   *http.Client
}

// Option is a functional option for the OpenAI client.
type Option func(*options)

// WithToken passes the OpenAI API token to the client. If not set, the token
// is read from the OPENAI_API_KEY environment variable.
func WithToken(token string) Option {
	return func(opts *options) {
		opts.token = token
	}
}

// WithModel passes the OpenAI model to the client. If not set, the model
// is read from the OPENAI_MODEL environment variable.
func WithModel(model string) Option {
	return func(opts *options) {
		opts.model = model
	}
}

// WithBaseURL passes the OpenAI base url to the client. If not set, the base
// url is read from the OPENAI_BASE_URL environment variable, with the SDK
// default used as the last resort.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

// WithOrganization passes the OpenAI organization to the client.
func WithOrganization(organization string) Option {
	return func(opts *options) {
		opts.organization = organization
	}
}

// WithHTTPClient allows setting a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = client
	}
}

func resolveOptions(opts ...Option) (*options, error) {
	o := &options{
		token:   os.Getenv(tokenEnvVarName),
		model:   os.Getenv(modelEnvVarName),
		baseURL: os.Getenv(baseURLEnvVarName),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.token == "" {
		return nil, errors.Newf("missing the OpenAI API key, set it in the %s environment variable", tokenEnvVarName)
	}
	if o.model == "" {
		o.model = DefaultModel
	}
	return o, nil
}
