package reviewagents

import (
	"context"
	"fmt"

	"github.com/montagne-dev/lampe/pkg/gitinspect"
	"github.com/montagne-dev/lampe/pkg/model"
)

// TopicAgentNames lists the whole-PR review agents' names, in the
// fixed order spec.md §4.E enumerates them.
func TopicAgentNames() []string {
	names := make([]string, 0, len(topicAgents))
	for _, s := range topicAgents {
		names = append(names, s.name)
	}
	return names
}

// RunTopicAgent runs the named whole-PR review agent (one of
// TopicAgentNames) against the full pull request diff summary
// (spec.md §4.E — these agents receive in.FilesChanged, not a single
// file's diff, and use the tool set to pull in whatever file-level
// detail they need).
func RunTopicAgent(ctx context.Context, name string, llmFactory LLMFactory, inspector *gitinspect.Inspector, in Input) (model.AgentReviewOutput, error) {
	spec, ok := findTopicAgent(name)
	if !ok {
		return model.AgentReviewOutput{}, fmt.Errorf("reviewagents: unknown topic agent %q", name)
	}

	userMessage := fmt.Sprintf("Pull request: %s\n\nFiles changed:\n%s\n", in.PullRequest.Title, in.FilesChanged)

	r := runner{name: spec.name, focusAreas: spec.focusAreas, systemPrompt: spec.systemPrompt()}
	return r.run(ctx, llmFactory, inspector, in, userMessage)
}

func findTopicAgent(name string) (topicAgentSpec, bool) {
	for _, s := range topicAgents {
		if s.name == name {
			return s, true
		}
	}
	return topicAgentSpec{}, false
}
