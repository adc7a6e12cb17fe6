package tools

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"golang.org/x/exp/maps"

	"github.com/denali-labs/reagent/pkg/metricskey"
)

var logger = xlog.NewPackageLogger("github.com/denali-labs/reagent", "tools")

// ErrToolNotFound is returned by Dispatch for unregistered tool names.
var ErrToolNotFound = errors.New("tool not found")

// Registry manages tool registration and dispatch.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ITool
}

func NewRegistry(list ...ITool) *Registry {
	r := &Registry{
		tools: make(map[string]ITool),
	}
	for _, tool := range list {
		r.Register(tool)
	}
	return r
}

// Register adds a tool to the registry. Names are matched
// case-insensitively; a later registration replaces an earlier one.
func (r *Registry) Register(tool ITool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[nameKey(tool.Name())] = tool
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (ITool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[nameKey(name)]
	return t, ok
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for _, key := range maps.Keys(r.tools) {
		names = append(names, r.tools[key].Name())
	}
	sort.Strings(names)
	return names
}

// List returns the registered tools ordered by name.
func (r *Registry) List() []ITool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]ITool, 0, len(r.tools))
	for _, t := range r.tools {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Dispatch runs a tool by name with the given input.
// Unknown names return ErrToolNotFound; the caller decides whether that
// aborts the run or becomes an observation.
func (r *Registry) Dispatch(ctx context.Context, name, input string, callback Callback) (string, error) {
	tool, ok := r.Get(name)
	if !ok {
		metricskey.StatsToolCallsNotFound.IncrCounter(1, name)
		return "", errors.WithStack(ErrToolNotFound)
	}

	if callback != nil {
		callback.OnToolStart(ctx, tool, input)
	}

	started := time.Now()
	output, err := tool.Call(ctx, input)
	metricskey.PerfToolCall.MeasureSince(started, tool.Name())

	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, tool.Name())
		if callback != nil {
			callback.OnToolError(ctx, tool, input, err)
		}
		return "", err
	}

	metricskey.StatsToolCallsSucceeded.IncrCounter(1, tool.Name())
	if callback != nil {
		callback.OnToolEnd(ctx, tool, input, output)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"tool", tool.Name(),
		"duration_ms", time.Since(started).Milliseconds(),
		"output_size", len(output),
	)
	return output, nil
}

// lowercase key, the model does not always preserve case
func nameKey(name string) string {
	return strings.ToLower(name)
}
