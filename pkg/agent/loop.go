package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/montagne-dev/lampe/pkg/logger"
	"github.com/montagne-dev/lampe/pkg/model"
	"github.com/montagne-dev/lampe/pkg/tools"
	"github.com/montagne-dev/lampe/pkg/workflow"
)

var log = logger.New("agent:loop")

// maxChatBuffer bounds the agent's chat history (spec.md §4.D "bounded
// chat buffer"). A run exceeding this many messages without reaching a
// final answer is almost certainly looping; the caller-level timeout
// (spec.md §4.D "Bounds and safety") is the primary backstop, this is
// a secondary one.
const maxChatBuffer = 200

// Output is an agent run's result: the LLM's final text plus its
// accumulated tool-use trace.
type Output struct {
	Text    string
	Sources []model.ToolSource
}

// Loop runs spec.md §4.D's prepare_history → call_llm →
// (tool_calls | complete) state machine, built atop the workflow
// runtime (component C). Tool partial params must already be bound on
// registry (spec.md §4.D "installed once before the first LLM call,
// via update_tools").
func Loop(ctx context.Context, llm LLM, registry *tools.Registry, systemPrompt, userMessage string, timeout time.Duration) (Output, error) {
	rt := workflow.New()

	type promptEvent struct{ messages []Message }
	type llmReplyEvent struct {
		messages []Message
		resp     Response
	}
	type doneEvent struct{ out Output }

	rt.AddStep("prepare_history", promptEvent{}, 1, func(ctx context.Context, wctx *workflow.Context, ev workflow.Event) ([]workflow.Event, error) {
		pe := ev.(promptEvent)
		return []workflow.Event{llmCallEvent{messages: pe.messages}}, nil
	})

	rt.AddStep("call_llm", llmCallEvent{}, 1, func(ctx context.Context, wctx *workflow.Context, ev workflow.Event) ([]workflow.Event, error) {
		ce := ev.(llmCallEvent)
		if len(ce.messages) > maxChatBuffer {
			return nil, fmt.Errorf("agent loop exceeded chat buffer of %d messages without a final answer", maxChatBuffer)
		}
		resp, err := llm.Chat(ctx, ce.messages, toolSchemas(registry))
		if err != nil {
			return nil, fmt.Errorf("llm chat: %w", err)
		}
		return []workflow.Event{llmReplyEvent{messages: ce.messages, resp: resp}}, nil
	})

	var sources []model.ToolSource
	rt.AddStep("branch", llmReplyEvent{}, 1, func(ctx context.Context, wctx *workflow.Context, ev workflow.Event) ([]workflow.Event, error) {
		re := ev.(llmReplyEvent)
		assistantMsg := Message{Role: RoleAssistant, Content: re.resp.Content, ToolCalls: re.resp.ToolCalls}
		history := append(append([]Message(nil), re.messages...), assistantMsg)

		if len(re.resp.ToolCalls) == 0 {
			return []workflow.Event{workflow.StopEvent{Result: Output{Text: re.resp.Content, Sources: sources}}}, nil
		}

		for _, call := range re.resp.ToolCalls {
			toolMsg := dispatchTool(ctx, registry, call, &sources)
			history = append(history, toolMsg)
		}
		return []workflow.Event{llmCallEvent{messages: history}}, nil
	})

	initial := []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: userMessage},
	}
	result, err := rt.Run(ctx, promptEvent{messages: initial}, timeout)
	if err != nil {
		return Output{}, err
	}
	out, ok := result.(Output)
	if !ok {
		return Output{}, fmt.Errorf("agent loop: unexpected result type %T", result)
	}
	return out, nil
}

type llmCallEvent struct{ messages []Message }

// dispatchTool executes one requested tool call, synthesizing a tool
// message on unknown-tool or invocation error rather than failing the
// turn (spec.md §4.D). Successful outputs are recorded to sources.
func dispatchTool(ctx context.Context, registry *tools.Registry, call ToolCall, sources *[]model.ToolSource) Message {
	t, ok := registry.Get(call.ToolName)
	if !ok {
		log.Printf("unknown tool requested: %s", call.ToolName)
		return Message{Role: RoleTool, ToolCallID: call.ID, Content: fmt.Sprintf("tool %q does not exist", call.ToolName)}
	}

	result, err := t.Invoke(ctx, call.Arguments)
	if err != nil {
		log.Printf("tool %s failed: %v", call.ToolName, err)
		return Message{Role: RoleTool, ToolCallID: call.ID, Content: fmt.Sprintf("error: %v", err)}
	}

	*sources = append(*sources, model.ToolSource{Tool: call.ToolName, Args: call.Arguments, Output: result.Content})
	return Message{Role: RoleTool, ToolCallID: call.ID, Content: result.Content}
}

func toolSchemas(registry *tools.Registry) []ToolSchema {
	list := registry.List()
	out := make([]ToolSchema, 0, len(list))
	for _, t := range list {
		out = append(out, ToolSchema{Name: t.Name, Description: t.Description, Schema: t.Schema()})
	}
	return out
}
