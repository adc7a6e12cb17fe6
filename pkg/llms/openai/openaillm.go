package openai

import (
	"context"

	"github.com/cockroachdb/errors"
	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/denali-labs/reagent/pkg/llms"
)

// ErrEmptyResponse is returned when the OpenAI API returns an empty response.
var ErrEmptyResponse = errors.New("no response")

// LLM is the OpenAI implementation of the llms.Model interface,
// backed by the official openai-go SDK.
type LLM struct {
	client sdk.Client
	model  string
}

var _ llms.Model = (*LLM)(nil)

// New returns a new OpenAI LLM.
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
	if o.organization != "" {
		reqOpts = append(reqOpts, option.WithOrganization(o.organization))
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
func (o *LLM) GetName() string {
	return o.model
}

// GetProviderType implements the Model interface.
func (o *LLM) GetProviderType() llms.ProviderType {
	return llms.ProviderOpenAI
}

// GenerateContent implements the Model interface.
func (o *LLM) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{
		Model: o.model,
	}
	for _, opt := range options {
		opt(&opts)
	}

	chatMsgs := make([]sdk.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llms.RoleSystem:
			chatMsgs = append(chatMsgs, sdk.SystemMessage(m.Content))
		case llms.RoleAI:
			chatMsgs = append(chatMsgs, sdk.AssistantMessage(m.Content))
		case llms.RoleHuman, llms.RoleTool:
			// Tool observations travel as user turns: the ReAct protocol is
			// plain text, not native tool-calls.
			chatMsgs = append(chatMsgs, sdk.UserMessage(m.Content))
		default:
			return nil, errors.Newf("role %v not supported", m.Role)
		}
	}

	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(opts.Model),
		Messages: chatMsgs,
	}
	if opts.TemperatureSet() {
		params.Temperature = sdk.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = sdk.Int(int64(opts.MaxTokens))
	}
	if opts.Seed > 0 {
		params.Seed = sdk.Int(int64(opts.Seed))
	}
	if len(opts.StopWords) > 0 {
		params.Stop = sdk.ChatCompletionNewParamsStopUnion{
			OfStringArray: opts.StopWords,
		}
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errors.WithMessage(err, "openai chat completion failed")
	}
	if len(completion.Choices) == 0 {
		return nil, errors.WithStack(ErrEmptyResponse)
	}

	choices := make([]*llms.ContentChoice, 0, len(completion.Choices))
	for _, c := range completion.Choices {
		choices = append(choices, &llms.ContentChoice{
			Content:    c.Message.Content,
			StopReason: string(c.FinishReason),
		})
	}

	return &llms.ContentResponse{
		Choices: choices,
		Usage: llms.Usage{
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
			TotalTokens:  completion.Usage.TotalTokens,
		},
	}, nil
}
