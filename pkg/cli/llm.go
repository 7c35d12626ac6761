package cli

import (
	"github.com/montagne-dev/lampe/pkg/agent"
	"github.com/montagne-dev/lampe/pkg/config"
	"github.com/montagne-dev/lampe/pkg/reviewagents"
)

// newLLMFactory closes over the resolved vendor keys so every tier
// selection (spec.md §4.E) goes through agent.NewLLM's
// Anthropic-preferred resolution.
func newLLMFactory(env config.Env) reviewagents.LLMFactory {
	return func(tier agent.Tier) (agent.LLM, error) {
		return agent.NewLLM(env.AnthropicAPIKey, env.OpenAIAPIKey, tier)
	}
}
