package prompts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denali-labs/reagent/prompts"
)

func Test_Template(t *testing.T) {
	tpl, err := prompts.NewTemplate("Hello {{ name }}, today is {{ day }}.")
	require.NoError(t, err)

	out, err := tpl.Format(map[string]any{"name": "agent", "day": "Monday"})
	require.NoError(t, err)
	assert.Equal(t, "Hello agent, today is Monday.", out)

	_, err = prompts.NewTemplate("{{ broken")
	assert.Error(t, err)
}

type staticTool struct {
	name string
}

func (t *staticTool) Name() string        { return t.name }
func (t *staticTool) Description() string { return "does " + t.name + " things" }
func (t *staticTool) Parameters() any     { return nil }
func (t *staticTool) Call(_ context.Context, input string) (string, error) {
	return input, nil
}

func Test_ReActPrompt(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	out, err := prompts.ReActPrompt(now, &staticTool{name: "calculator"}, &staticTool{name: "get_weather"})
	require.NoError(t, err)

	assert.Contains(t, out, "The current date is 2026-08-24.")
	assert.Contains(t, out, "Action: <tool_name>: <input>")
	assert.Contains(t, out, `"Name": "calculator"`)
	assert.Contains(t, out, `"Name": "get_weather"`)
	assert.Contains(t, out, "Answer: <final answer or conclusion>")
	assert.Contains(t, out, "PAUSE")
}
