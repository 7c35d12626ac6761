package reviewagents

import (
	"context"
	"time"

	"github.com/montagne-dev/lampe/pkg/agent"
	"github.com/montagne-dev/lampe/pkg/gitinspect"
	"github.com/montagne-dev/lampe/pkg/model"
	"github.com/montagne-dev/lampe/pkg/tools"
)

// defaultLoopTimeout bounds a single review agent's run (spec.md §4.D
// "Bounds and safety" — the per-agent timeout, distinct from the
// whole-run --timeout-seconds deadline set in pkg/cli).
const defaultLoopTimeout = 5 * time.Minute

// Input is what every review agent (diff-focused or whole-PR) needs to
// run: the repo/PR pair, a rendered "files changed" summary the
// pipeline computed once, the review depth, and optional custom
// guidelines appended to the system prompt (spec.md §4.E).
type Input struct {
	Repository     model.Repository
	PullRequest    model.PullRequest
	FilesChanged   string
	TargetFilePath string // set only for the diff-focused agent
	ReviewDepth    model.ReviewDepth
	Guidelines     []string
}

// LLMFactory builds an LLM adapter for a given tier. Supplied by the
// caller (pkg/pipeline) so review agents stay vendor-agnostic.
type LLMFactory func(tier agent.Tier) (agent.LLM, error)

// runner holds what's fixed per named agent: its identity, its system
// prompt, and its declared focus areas (spec.md §4.E lists these per
// agent: security, performance, testing, api-usage, design-pattern,
// code-quality, and a generic default, plus the diff-focused agent).
type runner struct {
	name         string
	focusAreas   []string
	systemPrompt string
}

// run executes the shared loop: bind the repo-scoped tool registry,
// select a tier, run the agent loop, and parse its final answer.
func (r runner) run(ctx context.Context, llmFactory LLMFactory, inspector *gitinspect.Inspector, in Input, userMessage string) (model.AgentReviewOutput, error) {
	tier := tierForDepth(in.ReviewDepth)
	llm, err := llmFactory(tier)
	if err != nil {
		return model.AgentReviewOutput{}, err
	}

	base := in.PullRequest.BaseCommit
	head := in.PullRequest.HeadCommit
	registry := tools.NewRepoRegistry(inspector, base, head).WithPartialParams(map[string]any{
		"include_line_numbers": true,
	})

	systemPrompt := r.systemPrompt
	for _, g := range in.Guidelines {
		systemPrompt += "\n\nAdditional guideline: " + g
	}

	out, err := agent.Loop(ctx, llm, registry, systemPrompt, userMessage, defaultLoopTimeout)
	if err != nil {
		return model.AgentReviewOutput{}, err
	}

	return parseAgentResponse(r.name, r.focusAreas, out.Text, out.Sources), nil
}
