// Package registry exposes tools to agent runtimes as a descriptor table
// with a uniform invocation contract: failures come back as structured
// error values, never as errors crossing the tool boundary.
package registry

import (
	"context"
	"strings"

	"github.com/effective-security/railgentic/llmutils"
	"github.com/effective-security/railgentic/railapi"
	"github.com/effective-security/railgentic/tools"
	"github.com/effective-security/railgentic/tools/railway"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/railgentic", "registry")

// Descriptor is the agent-facing view of one tool.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}

// ErrorValue is the uniform failure shape returned by Invoke.
type ErrorValue struct {
	Error string `json:"error"`
}

// Registry dispatches tool invocations by name.
// Registration happens once at startup; lookups are read-only after that.
type Registry struct {
	toolsByName map[string]tools.ITool
	list        []tools.ITool
}

func New(list ...tools.ITool) *Registry {
	r := &Registry{
		toolsByName: make(map[string]tools.ITool),
	}
	r.Register(list...)
	return r
}

// NewRailway builds a registry with the complete railway tool set.
func NewRailway(client *railapi.Client) *Registry {
	return New(
		railway.NewPNRStatus(client),
		railway.NewStationSearch(client),
		railway.NewLiveStation(client),
		railway.NewTrainSchedule(client),
		railway.NewFare(client),
		railway.NewLiveTrainStatus(client),
		railway.NewSeatAvailability(client),
		railway.NewTrainSearch(client),
	)
}

// Register adds tools to the registry; existing names are not replaced.
func (r *Registry) Register(list ...tools.ITool) {
	for _, tool := range list {
		key := strings.ToLower(tool.Name())
		if r.toolsByName[key] == nil {
			r.toolsByName[key] = tool
			r.list = append(r.list, tool)
		}
	}
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []tools.ITool {
	return r.list
}

// Descriptors returns the agent-facing descriptor table.
func (r *Registry) Descriptors() []Descriptor {
	res := make([]Descriptor, 0, len(r.list))
	for _, tool := range r.list {
		res = append(res, Descriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return res
}

// Describe renders the capability listing for an agent system prompt.
func (r *Registry) Describe() string {
	return tools.GetDescriptions(r.list...)
}

// Invoke dispatches a tool call by name and returns the result as a JSON
// string. Every failure path, unknown tool included, is converted into a
// `{"error": ...}` value; no error ever crosses this boundary.
func (r *Registry) Invoke(ctx context.Context, name, argsJSON string) string {
	tool := r.toolsByName[strings.ToLower(name)]
	if tool == nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "tool_not_found",
			"tool", name,
		)
		return llmutils.ToJSON(ErrorValue{Error: "unknown tool: " + name})
	}

	res, err := tool.Call(ctx, argsJSON)
	if err != nil {
		logger.ContextKV(ctx, xlog.DEBUG,
			"status", "tool_call_failed",
			"tool", name,
			"args", slices.StringUpto(argsJSON, 64),
			"err", err.Error(),
		)
		return llmutils.ToJSON(ErrorValue{Error: err.Error()})
	}
	return res
}
