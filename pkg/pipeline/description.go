package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/montagne-dev/lampe/pkg/agent"
	"github.com/montagne-dev/lampe/pkg/gitinspect"
	"github.com/montagne-dev/lampe/pkg/model"
	"github.com/montagne-dev/lampe/pkg/reviewagents"
	"github.com/montagne-dev/lampe/pkg/tools"
)

// defaultDescriptionTimeout bounds the agentic description variant's
// single agent loop run (spec.md §4.D "Bounds and safety").
const defaultDescriptionTimeout = 5 * time.Minute

// DescriptionOptions configures one description pipeline run.
type DescriptionOptions struct {
	Repository  model.Repository
	PullRequest model.PullRequest

	Include   []string
	Exclude   []string
	Reinclude []string

	// TruncationTokens overrides defaultTruncationTokens when positive.
	TruncationTokens int

	// Agentic selects spec.md §4.G's agentic variant (function-calling
	// agent over the repo tools) instead of the default single-shot
	// variant. Reinclude patterns are accepted on DescriptionOptions
	// for symmetry with the default variant but ignored by the agentic
	// variant (spec.md §9 Open Questions).
	Agentic bool
}

const descriptionSystemPrompt = `You write pull request descriptions. Given a unified diff, write a clear,
concise description of what the change does and why, suitable as the body of
the pull request. Use markdown. Do not wrap your entire answer in a code
fence. Do not invent context the diff does not support.`

const agenticDescriptionSystemPrompt = `You write pull request descriptions. You are given a summary of the files
changed in this pull request. Use the available tools to inspect diffs for
specific files, read file content, and search the repository as needed to
understand the change before writing.

Write a clear, concise description of what the change does and why, suitable
as the body of the pull request. Use markdown. When you are done
investigating, respond with ONLY the description text — no preamble, no
surrounding code fence.`

// RunDescriptionPipeline implements spec.md §4.G: produce a
// PRDescriptionPayload either from a single LLM pass over a truncated
// full-PR diff (default) or from a function-calling agent run over the
// repo tool set (agentic).
func RunDescriptionPipeline(ctx context.Context, llmFactory reviewagents.LLMFactory, inspector *gitinspect.Inspector, opts DescriptionOptions) (model.PRDescriptionPayload, error) {
	if opts.Agentic {
		return runAgenticDescription(ctx, llmFactory, inspector, opts)
	}
	return runDefaultDescription(ctx, llmFactory, inspector, opts)
}

func runDefaultDescription(ctx context.Context, llmFactory reviewagents.LLMFactory, inspector *gitinspect.Inspector, opts DescriptionOptions) (model.PRDescriptionPayload, error) {
	base := opts.PullRequest.BaseCommit
	head := opts.PullRequest.HeadCommit

	diff, err := inspector.GetDiffBetweenCommits(ctx, base, head, opts.Exclude, opts.Include, opts.Reinclude, 0)
	if err != nil {
		return model.PRDescriptionPayload{}, err
	}
	if strings.TrimSpace(diff) == "" {
		return model.PRDescriptionPayload{Description: "No reviewable file changes were found in this pull request."}, nil
	}

	truncated := truncateForPrompt(diff, opts.TruncationTokens)

	llm, err := llmFactory(agent.TierMid)
	if err != nil {
		return model.PRDescriptionPayload{}, err
	}

	messages := []agent.Message{
		{Role: agent.RoleSystem, Content: descriptionSystemPrompt},
		{Role: agent.RoleUser, Content: fmt.Sprintf("Diff:\n%s", truncated)},
	}
	resp, err := llm.Chat(ctx, messages, nil)
	if err != nil {
		return model.PRDescriptionPayload{}, fmt.Errorf("description chat: %w", err)
	}

	return model.PRDescriptionPayload{Description: stripWholeFence(strings.TrimSpace(resp.Content))}, nil
}

func runAgenticDescription(ctx context.Context, llmFactory reviewagents.LLMFactory, inspector *gitinspect.Inspector, opts DescriptionOptions) (model.PRDescriptionPayload, error) {
	base := opts.PullRequest.BaseCommit
	head := opts.PullRequest.HeadCommit

	infos, err := inspector.ListChangedFilesAsObjects(ctx, base, head)
	if err != nil {
		return model.PRDescriptionPayload{}, err
	}
	paths := make([]string, len(infos))
	for i, fi := range infos {
		paths[i] = fi.Path
	}
	filtered := gitinspect.FilterPaths(paths, opts.Include, opts.Exclude, nil)
	filteredSet := make(map[string]bool, len(filtered))
	for _, p := range filtered {
		filteredSet[p] = true
	}

	var filesChanged strings.Builder
	for _, fi := range infos {
		if !filteredSet[fi.Path] {
			continue
		}
		fmt.Fprintf(&filesChanged, "[%s] %s | +%d -%d | %.1fKB\n", fi.Status, fi.Path, fi.Additions, fi.Deletions, fi.SizeKB)
	}
	if filesChanged.Len() == 0 {
		return model.PRDescriptionPayload{Description: "No reviewable file changes were found in this pull request."}, nil
	}

	llm, err := llmFactory(agent.TierMid)
	if err != nil {
		return model.PRDescriptionPayload{}, err
	}

	registry := tools.NewRepoRegistry(inspector, base, head)
	userMessage := fmt.Sprintf("Pull request: %s\n\nFiles changed:\n%s\n", opts.PullRequest.Title, filesChanged.String())

	out, err := agent.Loop(ctx, llm, registry, agenticDescriptionSystemPrompt, userMessage, defaultDescriptionTimeout)
	if err != nil {
		return model.PRDescriptionPayload{}, err
	}

	return model.PRDescriptionPayload{Description: stripWholeFence(strings.TrimSpace(out.Text))}, nil
}
