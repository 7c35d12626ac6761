package agent

import "fmt"

// NewLLM selects a vendor adapter per spec.md §6 ("at least one of
// OPENAI_API_KEY, ANTHROPIC_API_KEY"), preferring Anthropic when both
// are configured.
func NewLLM(anthropicKey, openaiKey string, tier Tier) (LLM, error) {
	switch {
	case anthropicKey != "":
		return NewAnthropicLLM(anthropicKey, tier), nil
	case openaiKey != "":
		return NewOpenAILLM(openaiKey, tier), nil
	default:
		return nil, fmt.Errorf("no LLM vendor key configured: set ANTHROPIC_API_KEY or OPENAI_API_KEY")
	}
}
