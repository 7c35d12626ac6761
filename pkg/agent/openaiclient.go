package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openaiTierModels maps a logical review-depth tier to a concrete
// OpenAI model name. Exact identifiers are configuration, not
// contract (spec.md §4.E).
var openaiTierModels = map[Tier]openai.ChatModel{
	TierSmall: openai.ChatModelGPT4oMini,
	TierMid:   openai.ChatModelGPT4o,
	TierLarge: openai.ChatModelGPT4o,
}

// OpenAILLM adapts github.com/openai/openai-go to the agent package's
// vendor-neutral LLM interface. Used when ANTHROPIC_API_KEY is unset
// but OPENAI_API_KEY is present (spec.md §6).
type OpenAILLM struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAILLM builds an OpenAILLM for the given review-depth tier.
func NewOpenAILLM(apiKey string, tier Tier) *OpenAILLM {
	model, ok := openaiTierModels[tier]
	if !ok {
		model = openaiTierModels[TierMid]
	}
	return &OpenAILLM{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Chat implements LLM.
func (o *OpenAILLM) Chat(ctx context.Context, messages []Message, toolset []ToolSchema) (Response, error) {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case RoleUser:
			params = append(params, openai.UserMessage(m.Content))
		case RoleAssistant:
			params = append(params, openaiAssistantMessage(m))
		case RoleTool:
			params = append(params, openai.ToolMessage(m.Content, m.ToolCallID))
		}
	}

	tools := make([]openai.ChatCompletionToolParam, 0, len(toolset))
	for _, t := range toolset {
		schemaJSON, _ := json.Marshal(t.Schema)
		var params map[string]any
		_ = json.Unmarshal(schemaJSON, &params)
		tools = append(tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  params,
			},
		})
	}

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: params,
		Tools:    tools,
	})
	if err != nil {
		return Response{}, fmt.Errorf("openai chat: %w", err)
	}
	if len(completion.Choices) == 0 {
		return Response{}, fmt.Errorf("openai chat: empty choices")
	}

	choice := completion.Choices[0].Message
	resp := Response{Content: choice.Content}
	for _, call := range choice.ToolCalls {
		var args map[string]any
		_ = json.Unmarshal([]byte(call.Function.Arguments), &args)
		resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: call.ID, ToolName: call.Function.Name, Arguments: args})
	}
	return resp, nil
}

func openaiAssistantMessage(m Message) openai.ChatCompletionMessageParamUnion {
	if len(m.ToolCalls) == 0 {
		return openai.AssistantMessage(m.Content)
	}
	toolCalls := make([]openai.ChatCompletionMessageToolCallParam, 0, len(m.ToolCalls))
	for _, call := range m.ToolCalls {
		argsJSON, _ := json.Marshal(call.Arguments)
		toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallParam{
			ID: call.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      call.ToolName,
				Arguments: string(argsJSON),
			},
		})
	}
	msg := openai.ChatCompletionAssistantMessageParam{
		Content:   openai.ChatCompletionAssistantMessageParamContentUnion{OfString: openai.String(m.Content)},
		ToolCalls: toolCalls,
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &msg}
}
