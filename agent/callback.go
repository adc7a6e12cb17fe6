package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/effective-security/xlog"

	"github.com/denali-labs/reagent/tools"
)

// Callback observes the reasoning loop. Tool events come through the
// embedded tools.Callback.
type Callback interface {
	tools.Callback

	OnAgentStart(ctx context.Context, agent string, question string)
	OnAgentEnd(ctx context.Context, agent string, result *Result)
	OnAgentError(ctx context.Context, agent string, err error)
	// OnModelResponse is invoked with each assistant reply, final or not.
	OnModelResponse(ctx context.Context, agent string, content string)
}

// NoopCallback does nothing.
type NoopCallback struct{}

func NewNoopCallback() *NoopCallback {
	return &NoopCallback{}
}

var _ Callback = (*NoopCallback)(nil)

func (l *NoopCallback) OnAgentStart(ctx context.Context, agent string, question string)   {}
func (l *NoopCallback) OnAgentEnd(ctx context.Context, agent string, result *Result)      {}
func (l *NoopCallback) OnAgentError(ctx context.Context, agent string, err error)         {}
func (l *NoopCallback) OnModelResponse(ctx context.Context, agent string, content string) {}
func (l *NoopCallback) OnToolStart(ctx context.Context, tool tools.ITool, input string)   {}
func (l *NoopCallback) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
}
func (l *NoopCallback) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {}

// PrinterCallback is a callback handler that prints to the Writer.
type PrinterCallback struct {
	Out io.Writer
}

func NewPrinterCallback(out io.Writer) *PrinterCallback {
	return &PrinterCallback{Out: out}
}

var _ Callback = (*PrinterCallback)(nil)

func (l *PrinterCallback) OnAgentStart(ctx context.Context, agent string, question string) {
	fmt.Fprintf(l.Out, "Question: %s\n", question)
}

func (l *PrinterCallback) OnAgentEnd(ctx context.Context, agent string, result *Result) {
}

func (l *PrinterCallback) OnAgentError(ctx context.Context, agent string, err error) {
	fmt.Fprintf(l.Out, "Error: %s\n", err.Error())
}

func (l *PrinterCallback) OnModelResponse(ctx context.Context, agent string, content string) {
	fmt.Fprintln(l.Out, content)
}

func (l *PrinterCallback) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	fmt.Fprintf(l.Out, " -- Running %s: %s\n", tool.Name(), input)
}

func (l *PrinterCallback) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	fmt.Fprintf(l.Out, " -- Observation: %s\n", output)
}

func (l *PrinterCallback) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	fmt.Fprintf(l.Out, " -- Error: %s: %s\n", tool.Name(), err.Error())
}

// PackageLoggerCallback is a callback handler that prints to the logger.
type PackageLoggerCallback struct {
	logger *xlog.PackageLogger
}

func NewPackageLoggerCallback(logger *xlog.PackageLogger) *PackageLoggerCallback {
	return &PackageLoggerCallback{logger: logger}
}

var _ Callback = (*PackageLoggerCallback)(nil)

func (l *PackageLoggerCallback) OnAgentStart(ctx context.Context, agent string, question string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "agent_start",
		"agent", agent,
		"question", question,
	)
}

func (l *PackageLoggerCallback) OnAgentEnd(ctx context.Context, agent string, result *Result) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "agent_end",
		"agent", agent,
		"turns", result.Turns,
		"total_tokens", result.Usage.TotalTokens,
	)
}

func (l *PackageLoggerCallback) OnAgentError(ctx context.Context, agent string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "agent_error",
		"agent", agent,
		"err", err.Error(),
	)
}

func (l *PackageLoggerCallback) OnModelResponse(ctx context.Context, agent string, content string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "model_response",
		"agent", agent,
		"content", content,
	)
}

func (l *PackageLoggerCallback) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_start",
		"tool", tool.Name(),
		"input", input,
	)
}

func (l *PackageLoggerCallback) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_end",
		"tool", tool.Name(),
		"output", output,
	)
}

func (l *PackageLoggerCallback) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "tool_error",
		"tool", tool.Name(),
		"err", err.Error(),
	)
}
