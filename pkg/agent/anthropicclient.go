package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicTierModels maps a logical review-depth tier (spec.md §4.E) to a
// concrete Anthropic model identifier. Exact identifiers are
// configuration, not contract; these are the defaults.
var anthropicTierModels = map[Tier]anthropic.Model{
	TierSmall: anthropic.ModelClaudeHaiku4_5,
	TierMid:   anthropic.ModelClaudeSonnet4_5,
	TierLarge: anthropic.ModelClaudeOpus4_5,
}

const anthropicMaxTokens = 8192

// AnthropicLLM adapts github.com/anthropics/anthropic-sdk-go to the
// agent package's vendor-neutral LLM interface.
type AnthropicLLM struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicLLM builds an AnthropicLLM for the given review-depth
// tier, authenticated with apiKey.
func NewAnthropicLLM(apiKey string, tier Tier) *AnthropicLLM {
	model, ok := anthropicTierModels[tier]
	if !ok {
		model = anthropicTierModels[TierMid]
	}
	return &AnthropicLLM{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Chat implements LLM.
func (a *AnthropicLLM) Chat(ctx context.Context, messages []Message, toolset []ToolSchema) (Response, error) {
	var system string
	var params []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = m.Content
		case RoleUser:
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case RoleAssistant:
			params = append(params, anthropicAssistantMessage(m))
		case RoleTool:
			params = append(params, anthropic.NewUserMessage(anthropic.NewToolResultBlock(m.ToolCallID, m.Content, false)))
		}
	}

	tools := make([]anthropic.ToolUnionParam, 0, len(toolset))
	for _, t := range toolset {
		schemaJSON, _ := json.Marshal(t.Schema)
		var inputSchema anthropic.ToolInputSchemaParam
		_ = json.Unmarshal(schemaJSON, &inputSchema)
		tools = append(tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: inputSchema,
			},
		})
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  params,
		Tools:     tools,
	})
	if err != nil {
		return Response{}, fmt.Errorf("anthropic chat: %w", err)
	}

	var resp Response
	for _, block := range msg.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			resp.Content += variant.Text
		case anthropic.ToolUseBlock:
			var args map[string]any
			_ = json.Unmarshal(variant.Input, &args)
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: variant.ID, ToolName: variant.Name, Arguments: args})
		}
	}
	return resp, nil
}

func anthropicAssistantMessage(m Message) anthropic.MessageParam {
	if len(m.ToolCalls) == 0 {
		return anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content))
	}
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(m.ToolCalls)+1)
	if m.Content != "" {
		blocks = append(blocks, anthropic.NewTextBlock(m.Content))
	}
	for _, call := range m.ToolCalls {
		blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, call.Arguments, call.ToolName))
	}
	return anthropic.NewAssistantMessage(blocks...)
}
