package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) Tool {
	return Tool{
		Name:        name,
		Description: "echoes its merged arguments",
		Params: []Param{
			{Name: "query", Type: "string", Required: true},
		},
		invoke: func(ctx context.Context, args map[string]any) (Result, error) {
			q, _ := args["query"].(string)
			repo, _ := args["repo_path"].(string)
			return Result{Content: q + "@" + repo}, nil
		},
	}
}

func TestTool_InvokeMergesPartialParams(t *testing.T) {
	tool := echoTool("search")
	tool.PartialParams = map[string]any{"repo_path": "/repo"}

	out, err := tool.Invoke(context.Background(), map[string]any{"query": "needle"})
	require.NoError(t, err)
	assert.Equal(t, "needle@/repo", out.Content)
}

func TestTool_PartialParamsWinOverModelArgs(t *testing.T) {
	tool := echoTool("search")
	tool.PartialParams = map[string]any{"repo_path": "/fixed"}

	out, err := tool.Invoke(context.Background(), map[string]any{"query": "x", "repo_path": "/attacker-supplied"})
	require.NoError(t, err)
	assert.Equal(t, "x@/fixed", out.Content)
}

func TestTool_Schema_RequiredParamsListed(t *testing.T) {
	tool := Tool{
		Params: []Param{
			{Name: "path", Type: "string", Required: true},
			{Name: "line", Type: "integer"},
		},
	}
	schema := tool.Schema()
	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "path")
	assert.Contains(t, schema.Properties, "line")
	assert.Equal(t, []string{"path"}, schema.Required)
}

func TestRegistry_GetAndList(t *testing.T) {
	a := echoTool("a")
	b := echoTool("b")
	r := NewRegistry(a, b)

	got, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.Name)

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, toolNames(r.List()))
}

func TestRegistry_WithPartialParamsAppliesToEveryTool(t *testing.T) {
	r := NewRegistry(echoTool("a"), echoTool("b"))
	bound := r.WithPartialParams(map[string]any{"repo_path": "/repo"})

	for _, name := range []string{"a", "b"} {
		tool, ok := bound.Get(name)
		require.True(t, ok)
		out, err := tool.Invoke(context.Background(), map[string]any{"query": "q"})
		require.NoError(t, err)
		assert.Equal(t, "q@/repo", out.Content)
	}

	// The original registry is left untouched.
	orig, _ := r.Get("a")
	out, _ := orig.Invoke(context.Background(), map[string]any{"query": "q"})
	assert.Equal(t, "q@", out.Content)
}

func toolNames(ts []Tool) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}
