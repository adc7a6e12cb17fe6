package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/denali-labs/reagent/llmutils"
)

// ITool is a tool for the llm agent to interact with different applications.
type ITool interface {
	// Name returns the name of the Tool, as the model refers to it
	// in an Action directive.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	// Should not exceed LLM model limit.
	Description() string
	// Parameters returns the parameters definition of the input, to be used in the prompt.
	Parameters() any

	// Call executes the tool with the given input and returns the result.
	// The input is the free text after the action name; tool failures are
	// returned as errors and captured by the loop as observations.
	Call(context.Context, string) (string, error)
}

type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
	Parameters  any    `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

// GetDescriptions renders the tool list for the system prompt.
func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return llmutils.BackticksJSON(llmutils.ToJSONIndent(d))
}

// StringArg extracts the value of field from a tool input. The protocol
// passes free text, but models occasionally emit the JSON-object form
// ({"Query": "..."}); both are accepted.
func StringArg(input, field string) string {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") {
		var m map[string]any
		if err := llmutils.UnmarshalLenient([]byte(trimmed), &m); err == nil {
			for k, v := range m {
				if strings.EqualFold(k, field) {
					if s, ok := v.(string); ok {
						return strings.TrimSpace(s)
					}
					return fmt.Sprint(v)
				}
			}
		}
	}
	return strings.Trim(trimmed, `"`)
}
