package tools_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denali-labs/reagent/tools"
)

type echoTool struct {
	name string
	err  error
}

func (t *echoTool) Name() string        { return t.name }
func (t *echoTool) Description() string { return "echoes the input" }
func (t *echoTool) Parameters() any     { return nil }

func (t *echoTool) Call(_ context.Context, input string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	return "echo: " + input, nil
}

type recordingCallback struct {
	started, ended, failed int
}

func (c *recordingCallback) OnToolStart(context.Context, tools.ITool, string) { c.started++ }
func (c *recordingCallback) OnToolEnd(context.Context, tools.ITool, string, string) {
	c.ended++
}
func (c *recordingCallback) OnToolError(context.Context, tools.ITool, string, error) {
	c.failed++
}

func Test_Registry_Dispatch(t *testing.T) {
	ctx := context.Background()
	reg := tools.NewRegistry(&echoTool{name: "calculator"}, &echoTool{name: "get_weather"})

	cb := &recordingCallback{}
	out, err := reg.Dispatch(ctx, "calculator", "2+2", cb)
	require.NoError(t, err)
	assert.Equal(t, "echo: 2+2", out)
	assert.Equal(t, 1, cb.started)
	assert.Equal(t, 1, cb.ended)

	// names are matched case-insensitively
	_, err = reg.Dispatch(ctx, "Calculator", "2+2", nil)
	require.NoError(t, err)

	_, err = reg.Dispatch(ctx, "nope", "", cb)
	assert.True(t, errors.Is(err, tools.ErrToolNotFound))
	assert.Equal(t, 0, cb.failed)

	reg.Register(&echoTool{name: "boom", err: errors.New("tool blew up")})
	_, err = reg.Dispatch(ctx, "boom", "", cb)
	assert.EqualError(t, err, "tool blew up")
	assert.Equal(t, 1, cb.failed)

	exp := []string{"boom", "calculator", "get_weather"}
	if diff := cmp.Diff(exp, reg.Names()); diff != "" {
		t.Errorf("unexpected names (-want +got):\n%s", diff)
	}
	assert.Len(t, reg.List(), 3)
}

func Test_Registry_Get(t *testing.T) {
	reg := tools.NewRegistry()
	_, ok := reg.Get("calculator")
	assert.False(t, ok)

	reg.Register(&echoTool{name: "calculator"})
	tool, ok := reg.Get("CALCULATOR")
	require.True(t, ok)
	assert.Equal(t, "calculator", tool.Name())
}

func Test_StringArg(t *testing.T) {
	assert.Equal(t, "Tokyo", tools.StringArg("Tokyo", "Location"))
	assert.Equal(t, "Tokyo", tools.StringArg(`"Tokyo"`, "Location"))
	assert.Equal(t, "Tokyo", tools.StringArg(`{"Location": "Tokyo"}`, "Location"))
	assert.Equal(t, "Tokyo", tools.StringArg(`{"location": "Tokyo"}`, "Location"))
}

func Test_GetDescriptions(t *testing.T) {
	out := tools.GetDescriptions(&echoTool{name: "calculator"})
	assert.Contains(t, out, "```json")
	assert.Contains(t, out, `"Name": "calculator"`)
	assert.Contains(t, out, `"Description": "echoes the input"`)
}
