// Package tools wraps gitinspect.Inspector operations as LLM-invocable
// tools with JSON schemas and partial-argument binding (spec.md §4.B).
package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Result is a tool invocation's output, matching spec.md's
// "{content: string}" contract.
type Result struct {
	Content string
}

// Param describes one ordered parameter in a tool's input schema.
type Param struct {
	Name        string
	Type        string // "string", "integer", "boolean", "array"
	Description string
	Required    bool
}

// Tool is a callable the agent loop can dispatch by name.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	// PartialParams are merged into every invocation's arguments; the
	// model must never supply these itself (spec.md §4.B). The
	// repository is not among them: repo tools close over their
	// gitinspect.Inspector (see NewRepoRegistry).
	PartialParams map[string]any
	invoke        func(ctx context.Context, args map[string]any) (Result, error)
}

// Invoke merges PartialParams into modelArgs (model-supplied values
// losing to partial params for any overlapping key, since partial
// params are the orchestrator's binding and must not be model
// overridable) and calls the underlying function.
func (t Tool) Invoke(ctx context.Context, modelArgs map[string]any) (Result, error) {
	merged := make(map[string]any, len(modelArgs)+len(t.PartialParams))
	for k, v := range modelArgs {
		merged[k] = v
	}
	for k, v := range t.PartialParams {
		merged[k] = v
	}
	return t.invoke(ctx, merged)
}

// Schema renders the tool's input schema as a JSON Schema object
// suitable for an LLM vendor's tool-definition field, via
// google/jsonschema-go.
func (t Tool) Schema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(t.Params))
	var required []string
	for _, p := range t.Params {
		props[p.Name] = &jsonschema.Schema{Type: p.Type, Description: p.Description}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// Registry is an ordered, name-addressable set of Tools exposed to an
// agent loop.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry builds a Registry from an ordered list of Tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.order = append(r.order, t.Name)
		r.tools[t.Name] = t
	}
	return r
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns the tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// WithPartialParams returns a copy of the registry with partialParams
// merged into every tool's PartialParams — the partial-argument binding
// described in spec.md §4.B/§4.D ("update_tools"). The repository and
// base/head commits are bound by NewRepoRegistry, not through here.
func (r *Registry) WithPartialParams(partialParams map[string]any) *Registry {
	out := &Registry{order: append([]string(nil), r.order...), tools: make(map[string]Tool, len(r.tools))}
	for name, t := range r.tools {
		merged := make(map[string]any, len(t.PartialParams)+len(partialParams))
		for k, v := range t.PartialParams {
			merged[k] = v
		}
		for k, v := range partialParams {
			merged[k] = v
		}
		t.PartialParams = merged
		out.tools[name] = t
	}
	return out
}

// ErrUnknownTool names the unknown-tool condition. Registry.Get does not
// return it (it reports a missing tool as ok == false), and the agent
// loop turns a missing tool into a tool-result message rather than a
// hard failure (spec.md §4.D).
var ErrUnknownTool = fmt.Errorf("tool does not exist")
