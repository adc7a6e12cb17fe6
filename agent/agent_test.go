package agent_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denali-labs/reagent/agent"
	"github.com/denali-labs/reagent/chatmodel"
	"github.com/denali-labs/reagent/pkg/llms"
	"github.com/denali-labs/reagent/store"
	"github.com/denali-labs/reagent/tools"
)

// scriptedModel replays canned replies and records the transcripts it was
// called with.
type scriptedModel struct {
	replies []string
	err     error

	calls [][]llms.Message
}

var _ llms.Model = (*scriptedModel)(nil)

func (m *scriptedModel) GetName() string                    { return "scripted" }
func (m *scriptedModel) GetProviderType() llms.ProviderType { return llms.ProviderOpenAI }

func (m *scriptedModel) GenerateContent(_ context.Context, messages []llms.Message, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.calls = append(m.calls, append([]llms.Message{}, messages...))

	idx := len(m.calls) - 1
	var content string
	if idx < len(m.replies) {
		content = m.replies[idx]
	}
	resp := &llms.ContentResponse{
		Usage: llms.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}
	if content != "" {
		resp.Choices = []*llms.ContentChoice{{Content: content, StopReason: "stop"}}
	}
	return resp, nil
}

type fakeTool struct {
	name   string
	output string
	err    error

	inputs []string
}

func (t *fakeTool) Name() string        { return t.name }
func (t *fakeTool) Description() string { return t.name }
func (t *fakeTool) Parameters() any     { return nil }

func (t *fakeTool) Call(_ context.Context, input string) (string, error) {
	t.inputs = append(t.inputs, input)
	if t.err != nil {
		return "", t.err
	}
	return t.output, nil
}

func Test_Run_DirectAnswer(t *testing.T) {
	model := &scriptedModel{replies: []string{"Answer: 42"}}
	ag := agent.New(model, "system", tools.NewRegistry())

	res, err := ag.Run(context.Background(), "What is 6 * 7?")
	require.NoError(t, err)
	assert.Equal(t, "Answer: 42", res.Content)
	assert.Equal(t, 1, res.Turns)
	assert.EqualValues(t, 15, res.Usage.TotalTokens)

	require.Len(t, model.calls, 1)
	require.Len(t, model.calls[0], 2)
	assert.Equal(t, llms.RoleSystem, model.calls[0][0].Role)
	assert.Equal(t, "system", model.calls[0][0].Content)
	assert.Equal(t, llms.RoleHuman, model.calls[0][1].Role)
	assert.Equal(t, "What is 6 * 7?", model.calls[0][1].Content)
}

func Test_Run_ToolLoop(t *testing.T) {
	calc := &fakeTool{name: "calculator", output: "40"}
	model := &scriptedModel{replies: []string{
		"Thought: I need to calculate 25 percent of 160.\nAction: calculator: 0.25 * 160\nPAUSE",
		"Answer: 40",
	}}

	var out bytes.Buffer
	ag := agent.New(model, "system", tools.NewRegistry(calc),
		agent.WithCallback(agent.NewPrinterCallback(&out)))

	res, err := ag.Run(context.Background(), "What is 25% of 160?")
	require.NoError(t, err)
	assert.Equal(t, "Answer: 40", res.Content)
	assert.Equal(t, 2, res.Turns)
	assert.EqualValues(t, 30, res.Usage.TotalTokens)

	require.Len(t, calc.inputs, 1)
	assert.Equal(t, "0.25 * 160", calc.inputs[0])

	// the observation is fed back as a user turn referencing the question
	require.Len(t, model.calls, 2)
	last := model.calls[1][len(model.calls[1])-1]
	assert.Equal(t, llms.RoleTool, last.Role)
	assert.Contains(t, last.Content, "Observation: 40")
	assert.Contains(t, last.Content, `"What is 25% of 160?"`)

	assert.Contains(t, out.String(), " -- Running calculator: 0.25 * 160")
	assert.Contains(t, out.String(), " -- Observation: 40")
}

func Test_Run_ToolErrorBecomesObservation(t *testing.T) {
	boom := &fakeTool{name: "get_weather", err: errors.New("service unavailable")}
	model := &scriptedModel{replies: []string{
		"Action: get_weather: Tokyo",
		"Answer: I could not retrieve the weather.",
	}}

	ag := agent.New(model, "system", tools.NewRegistry(boom))

	res, err := ag.Run(context.Background(), "Weather in Tokyo?")
	require.NoError(t, err)
	assert.Equal(t, "Answer: I could not retrieve the weather.", res.Content)

	last := model.calls[1][len(model.calls[1])-1]
	assert.Contains(t, last.Content, "Error executing action get_weather: service unavailable")
}

func Test_Run_UnknownActionAborts(t *testing.T) {
	replies := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		replies = append(replies, "Action: nonexistent: whatever")
	}
	model := &scriptedModel{replies: replies}

	ag := agent.New(model, "system", tools.NewRegistry(), agent.WithMaxTurns(10))

	_, err := ag.Run(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown actions")
	// 3 unknown actions are tolerated as error observations, the 4th aborts
	assert.Len(t, model.calls, 4)
}

func Test_Run_MaxTurns(t *testing.T) {
	calc := &fakeTool{name: "calculator", output: "4"}
	replies := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		replies = append(replies, "Thought: again.\nAction: calculator: 2 + 2\nPAUSE")
	}
	model := &scriptedModel{replies: replies}

	ag := agent.New(model, "system", tools.NewRegistry(calc))

	res, err := ag.Run(context.Background(), "loop forever")
	require.Error(t, err)
	assert.True(t, errors.Is(err, agent.ErrMaxTurns))
	require.NotNil(t, res)
	assert.Equal(t, 5, res.Turns)
	assert.Contains(t, res.Content, "Action: calculator")
	assert.Len(t, calc.inputs, 5)
}

func Test_Run_EmptyResponseRetried(t *testing.T) {
	// first two replies are empty, the third succeeds
	model := &scriptedModel{replies: []string{"", "", "Answer: done"}}

	ag := agent.New(model, "system", tools.NewRegistry())

	res, err := ag.Run(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "Answer: done", res.Content)
	assert.Len(t, model.calls, 3)
}

func Test_Run_EmptyResponseExhausted(t *testing.T) {
	model := &scriptedModel{replies: []string{"", "", ""}}

	ag := agent.New(model, "system", tools.NewRegistry())

	_, err := ag.Run(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func Test_Run_ModelError(t *testing.T) {
	model := &scriptedModel{err: errors.New("api unreachable")}

	ag := agent.New(model, "system", tools.NewRegistry())

	_, err := ag.Run(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api unreachable")
}

func Test_Run_EmptyQuestion(t *testing.T) {
	ag := agent.New(&scriptedModel{}, "system", tools.NewRegistry())

	_, err := ag.Run(context.Background(), "")
	assert.EqualError(t, err, "empty question")
}

func Test_Run_HistoryAcrossRuns(t *testing.T) {
	model := &scriptedModel{replies: []string{"Answer: first", "Answer: second"}}
	ms := store.NewMemoryStore()

	ag := agent.New(model, "system", tools.NewRegistry(), agent.WithStore(ms))

	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("", nil))

	_, err := ag.Run(ctx, "first question")
	require.NoError(t, err)

	_, err = ag.Run(ctx, "second question")
	require.NoError(t, err)

	// the second call sees the stored first exchange before the new question
	second := model.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t, "first question", second[1].Content)
	assert.Equal(t, "Answer: first", second[2].Content)
	assert.Equal(t, "second question", second[3].Content)
}

func Test_Run_ContentSizeLimit(t *testing.T) {
	model := &scriptedModel{replies: []string{"Answer: never reached"}}

	ag := agent.New(model, "system", tools.NewRegistry(), agent.WithMaxContentSize(4))

	_, err := ag.Run(context.Background(), "a long enough question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func Test_Run_MaxContentSizeTruncatesObservation(t *testing.T) {
	big := &fakeTool{name: "read_file", output: string(bytes.Repeat([]byte("x"), 20000))}
	model := &scriptedModel{replies: []string{
		"Action: read_file: big.txt",
		"Answer: summarized",
	}}

	ag := agent.New(model, "system", tools.NewRegistry(big))

	_, err := ag.Run(context.Background(), "summarize big.txt")
	require.NoError(t, err)

	last := model.calls[1][len(model.calls[1])-1]
	// observation prompt adds instructions around the capped payload
	assert.Less(t, len(last.Content), 9000)
}
