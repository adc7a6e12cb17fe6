// Package calc implements the calculator tool: arithmetic expressions are
// evaluated on an embedded JS VM with no host bindings.
package calc

import (
	"context"
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dop251/goja"

	"github.com/denali-labs/reagent/schema"
	"github.com/denali-labs/reagent/tools"
)

const ToolName = "calculator"

// Request represents the tool input.
type Request struct {
	Expression string `json:"Expression" jsonschema:"title=Expression,description=The mathematical expression to evaluate."`
}

// Response represents the evaluation result.
type Response struct {
	Result string `json:"Result"`
}

// Tool evaluates a single mathematical expression.
type Tool struct {
	name        string
	description string
	funcParams  any
}

var _ tools.Tool[Request, Response] = (*Tool)(nil)

func New() (*Tool, error) {
	sc, err := schema.New(reflect.TypeOf(Request{}))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create schema")
	}
	return &Tool{
		name:        ToolName,
		description: "Perform mathematical computations, e.g. 2 * (10 + 5).",
		funcParams:  sc.Parameters,
	}, nil
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	return t.funcParams
}

func (t *Tool) Run(ctx context.Context, req *Request) (*Response, error) {
	if req.Expression == "" {
		return nil, errors.New("invalid request: empty expression")
	}

	vm := goja.New()

	// interrupt the VM if the caller goes away mid-evaluation
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := vm.RunString(req.Expression)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to evaluate expression")
	}

	return &Response{Result: format(val)}, nil
}

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	req := Request{
		Expression: tools.StringArg(input, "Expression"),
	}
	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Result, nil
}

func format(val goja.Value) string {
	switch v := val.Export().(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return val.String()
	}
}
