package anthropic

import (
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
)

const (
	tokenEnvVarName   = "ANTHROPIC_API_KEY"  //nolint:gosec
	modelEnvVarName   = "ANTHROPIC_MODEL"    //nolint:gosec
	baseURLEnvVarName = "ANTHROPIC_BASE_URL" //nolint:gosec
)

// DefaultModel is used when neither the option nor the environment names one.
const DefaultModel = "claude-3-5-haiku-latest"

type options struct {
	token      string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for the Anthropic client.
type Option func(*options)

// WithToken passes the Anthropic API token to the client. If not set, the
// token is read from the ANTHROPIC_API_KEY environment variable.
func WithToken(token string) Option {
	return func(opts *options) {
		opts.token = token
	}
}

// WithModel passes the Anthropic model to the client. If not set, the model
// is read from the ANTHROPIC_MODEL environment variable.
func WithModel(model string) Option {
	return func(opts *options) {
		opts.model = model
	}
}

// WithBaseURL passes the Anthropic base url to the client.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
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
		return nil, errors.Newf("missing the Anthropic API key, set it in the %s environment variable", tokenEnvVarName)
	}
	if o.model == "" {
		o.model = DefaultModel
	}
	return o, nil
}
