package anthropic

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"

	"github.com/denali-labs/reagent/pkg/llms"
)

// ErrEmptyResponse is returned when the Anthropic API returns an empty response.
var ErrEmptyResponse = errors.New("no response")

// DefaultMaxTokens is applied when the caller does not set a limit;
// the Anthropic Messages API requires one.
const DefaultMaxTokens = 2048

// LLM is the Anthropic implementation of the llms.Model interface,
// backed by the official anthropic-sdk-go.
type LLM struct {
	client sdk.Client
	model  string
}

var _ llms.Model = (*LLM)(nil)

// New returns a new Anthropic LLM.
func New(opts ...Option) (*LLM, error) {
	o, err := resolveOptions(opts...)
	if err != nil {
		return nil, err
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(o.token),
	}
	if o.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(o.baseURL))
	}
	if o.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(o.httpClient))
	}

	return &LLM{
		client: sdk.NewClient(reqOpts...),
		model:  o.model,
	}, nil
}

// GetName implements the Model interface.
func (a *LLM) GetName() string {
	return a.model
}

// GetProviderType implements the Model interface.
func (a *LLM) GetProviderType() llms.ProviderType {
	return llms.ProviderAnthropic
}

// GenerateContent implements the Model interface.
func (a *LLM) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{
		Model: a.model,
	}
	for _, opt := range options {
		opt(&opts)
	}

	// Anthropic takes the system prompt outside of the message list.
	var system []sdk.TextBlockParam
	chatMsgs := make([]sdk.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llms.RoleSystem:
			system = append(system, sdk.TextBlockParam{Text: m.Content})
		case llms.RoleAI:
			chatMsgs = append(chatMsgs, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		case llms.RoleHuman, llms.RoleTool:
			chatMsgs = append(chatMsgs, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		default:
			return nil, errors.Newf("role %v not supported", m.Role)
		}
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	params := sdk.MessageNewParams{
		Model:     sdk.Model(opts.Model),
		MaxTokens: int64(maxTokens),
		System:    system,
		Messages:  chatMsgs,
	}
	if opts.TemperatureSet() {
		params.Temperature = sdk.Float(opts.Temperature)
	}
	if len(opts.StopWords) > 0 {
		params.StopSequences = opts.StopWords
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, errors.WithMessage(err, "anthropic message failed")
	}
	if len(msg.Content) == 0 {
		return nil, errors.WithStack(ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{
				Content:    sb.String(),
				StopReason: string(msg.StopReason),
			},
		},
		Usage: llms.Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
			TotalTokens:  msg.Usage.InputTokens + msg.Usage.OutputTokens,
		},
	}, nil
}
