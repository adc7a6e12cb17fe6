// Package agent implements the reasoning loop: the model is prompted with a
// Thought / Action / PAUSE / Observation protocol, action directives are
// dispatched to registered tools, and observations are fed back until the
// model produces a final answer or the turn budget runs out.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"

	"github.com/denali-labs/reagent/chatmodel"
	"github.com/denali-labs/reagent/llmutils"
	"github.com/denali-labs/reagent/pkg/llms"
	"github.com/denali-labs/reagent/pkg/metricskey"
	"github.com/denali-labs/reagent/store"
	"github.com/denali-labs/reagent/tools"
)

var logger = xlog.NewPackageLogger("github.com/denali-labs/reagent", "agent")

// ErrMaxTurns is returned when the turn budget is exhausted before the model
// produced a final answer. The Result still carries the last model reply.
var ErrMaxTurns = errors.New("max turns reached without a final answer")

// maxUnknownActions bounds consecutive dispatches to unregistered tool
// names before the run is aborted.
const maxUnknownActions = 3

// Agent drives the reasoning loop over a chat model and a tool registry.
type Agent struct {
	name         string
	model        llms.Model
	systemPrompt string
	registry     *tools.Registry
	cfg          *Config
}

// Result is the outcome of a single run.
type Result struct {
	// Content is the final model reply, normally "Answer: ...".
	Content string
	// Turns is the number of LLM calls made.
	Turns int
	// Usage is the accumulated token usage of the run.
	Usage llms.Usage
}

func New(model llms.Model, systemPrompt string, registry *tools.Registry, opts ...Option) *Agent {
	cfg := NewConfig(opts...)
	return &Agent{
		name:         cfg.Name,
		model:        model,
		systemPrompt: systemPrompt,
		registry:     registry,
		cfg:          cfg,
	}
}

func (a *Agent) Name() string {
	return a.name
}

// Run executes the reasoning loop for one question.
// Tool failures become observations, never run errors; run errors are
// reserved for transport failures, context cancellation and budget breaches.
func (a *Agent) Run(ctx context.Context, question string) (*Result, error) {
	if question == "" {
		return nil, errors.New("empty question")
	}

	cb := a.cfg.CallbackHandler
	if cb != nil {
		cb.OnAgentStart(ctx, a.name, question)
	}
	started := time.Now()
	defer metricskey.PerfAgentRun.MeasureSince(started, a.name)

	transcript := []llms.Message{llms.MessageFromText(llms.RoleSystem, a.systemPrompt)}
	historyLen := 0
	if a.cfg.Store != nil && chatmodel.GetChatID(ctx) != "" {
		history := a.cfg.Store.Messages(ctx)
		historyLen = len(history)
		transcript = append(transcript, history...)
	}
	transcript = append(transcript, llms.MessageFromText(llms.RoleHuman, question))

	res := &Result{}
	var lastContent string
	unknown := 0

	for turn := 0; turn < a.cfg.MaxTurns; turn++ {
		if size := llmutils.CountMessagesContentSize(transcript); size > a.cfg.MaxContentSize {
			return a.fail(ctx, errors.Newf("transcript size %d exceeds limit %d", size, a.cfg.MaxContentSize))
		}

		content, err := a.generate(ctx, transcript, res)
		if err != nil {
			return a.fail(ctx, err)
		}
		res.Turns++
		lastContent = content
		transcript = append(transcript, llms.MessageFromText(llms.RoleAI, content))
		if cb != nil {
			cb.OnModelResponse(ctx, a.name, content)
		}

		name, input, ok := parseAction(content)
		if !ok {
			// no action directive, the reply is final
			res.Content = content
			a.saveTranscript(ctx, transcript[1+historyLen:])
			metricskey.StatsAgentRunsSucceeded.IncrCounter(1, a.name)
			if cb != nil {
				cb.OnAgentEnd(ctx, a.name, res)
			}
			return res, nil
		}

		var toolCB tools.Callback
		if cb != nil {
			toolCB = cb
		}
		observation, err := a.registry.Dispatch(ctx, name, input, toolCB)
		switch {
		case err == nil:
			unknown = 0
		case errors.Is(err, tools.ErrToolNotFound):
			unknown++
			if unknown > maxUnknownActions {
				return a.fail(ctx, errors.Newf("aborting after %d consecutive unknown actions", unknown))
			}
			observation = fmt.Sprintf("Error executing action %s: unknown action", name)
		default:
			unknown = 0
			observation = fmt.Sprintf("Error executing action %s: %s", name, err.Error())
		}

		observation = llmutils.Truncate(observation, MaxObservationSize)
		transcript = append(transcript, llms.MessageFromText(llms.RoleTool, observationPrompt(observation, question)))
	}

	metricskey.StatsAgentTurnsExhausted.IncrCounter(1, a.name)
	a.saveTranscript(ctx, transcript[1+historyLen:])
	logger.ContextKV(ctx, xlog.WARNING,
		"agent", a.name,
		"reason", "turns_exhausted",
		"turns", res.Turns,
	)
	res.Content = lastContent
	return res, errors.WithStack(ErrMaxTurns)
}

// generate calls the model, retrying empty responses, and accumulates
// token usage into res.
func (a *Agent) generate(ctx context.Context, transcript []llms.Message, res *Result) (string, error) {
	callOpts := a.cfg.GetCallOptions()
	modelName := values.StringsCoalesce(a.cfg.Model, a.model.GetName())

	for attempt := 1; attempt <= a.cfg.MaxRetries; attempt++ {
		started := time.Now()
		resp, err := a.model.GenerateContent(ctx, transcript, callOpts...)
		metricskey.PerfLLMCall.MeasureSince(started, a.name, modelName)
		if err != nil {
			return "", errors.WithMessage(err, "failed to generate content")
		}

		metricskey.StatsLLMMessagesSent.IncrCounter(float64(len(transcript)), a.name, modelName)
		metricskey.StatsLLMInputTokens.IncrCounter(float64(resp.Usage.InputTokens), a.name, modelName)
		metricskey.StatsLLMOutputTokens.IncrCounter(float64(resp.Usage.OutputTokens), a.name, modelName)
		metricskey.StatsLLMTotalTokens.IncrCounter(float64(resp.Usage.TotalTokens), a.name, modelName)
		res.Usage.InputTokens += resp.Usage.InputTokens
		res.Usage.OutputTokens += resp.Usage.OutputTokens
		res.Usage.TotalTokens += resp.Usage.TotalTokens

		if len(resp.Choices) > 0 && resp.Choices[0].Content != "" {
			return resp.Choices[0].Content, nil
		}

		logger.ContextKV(ctx, xlog.WARNING,
			"agent", a.name,
			"model", modelName,
			"reason", "empty_response",
			"attempt", attempt,
		)
	}
	return "", errors.Newf("model returned empty response after %d attempts", a.cfg.MaxRetries)
}

func (a *Agent) fail(ctx context.Context, err error) (*Result, error) {
	metricskey.StatsAgentRunsFailed.IncrCounter(1, a.name)
	if cb := a.cfg.CallbackHandler; cb != nil {
		cb.OnAgentError(ctx, a.name, err)
	}
	return nil, err
}

func (a *Agent) saveTranscript(ctx context.Context, msgs []llms.Message) {
	if a.cfg.Store == nil || len(msgs) == 0 {
		return
	}
	if err := a.cfg.Store.Add(ctx, msgs...); err != nil && !errors.Is(err, store.ErrInvalidChatContext) {
		logger.ContextKV(ctx, xlog.WARNING,
			"agent", a.name,
			"reason", "failed_to_save_history",
			"err", err.Error(),
		)
	}
}

// observationPrompt re-anchors the model on the original question after a
// tool observation.
func observationPrompt(observation, question string) string {
	return fmt.Sprintf("Observation: %s\n\n"+
		"Given the original user question: %q, do ONE of the following:\n"+
		"- If the observation already contains the answer or enough data to compute it, respond immediately with `Answer: ...`.\n"+
		"- Otherwise, continue the loop with Thought, Action, PAUSE, Observation, and produce exactly ONE next Action.\n",
		observation, question)
}
