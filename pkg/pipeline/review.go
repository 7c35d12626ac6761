// Package pipeline implements spec.md §4.F (the parallel review
// pipeline) and §4.G (the description pipeline): the orchestration
// layer that fans review agents out over changed files, aggregates
// their output, and separately produces the PR description.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/montagne-dev/lampe/pkg/agent"
	"github.com/montagne-dev/lampe/pkg/gitinspect"
	"github.com/montagne-dev/lampe/pkg/logger"
	"github.com/montagne-dev/lampe/pkg/model"
	"github.com/montagne-dev/lampe/pkg/reviewagents"
	"github.com/montagne-dev/lampe/pkg/workflow"
)

var log = logger.New("pipeline:review")

// defaultMaxWorkers matches config.defaultParallelMaxWorkers; kept
// local because that constant is unexported.
const defaultMaxWorkers = 32

// ReviewOptions configures one review pipeline run.
type ReviewOptions struct {
	Repository  model.Repository
	PullRequest model.PullRequest

	Include   []string
	Exclude   []string
	Reinclude []string

	ReviewDepth model.ReviewDepth
	Guidelines  []string

	// EnableDiffFocused runs the diff-focused agent once per filtered
	// changed file (spec.md §4.E/§4.F).
	EnableDiffFocused bool
	// TopicAgents names which whole-PR agents to run, e.g. a subset of
	// reviewagents.TopicAgentNames(). Empty means "none".
	TopicAgents []string

	MaxWorkers int
}

// reviewJob is one unit of fan-out work: either the diff-focused agent
// bound to one file, or a named whole-PR topic agent.
type reviewJob struct {
	filePath  string // set for diff-focused jobs
	topicName string // set for topic-agent jobs
}

// RunReviewPipeline implements spec.md §4.F: enumerate changed files
// under the glob filters, fan every requested review agent out over
// them with bounded concurrency, then run one aggregation pass over
// the combined findings.
func RunReviewPipeline(ctx context.Context, llmFactory reviewagents.LLMFactory, inspector *gitinspect.Inspector, opts ReviewOptions) (model.PRReviewPayload, error) {
	base := opts.PullRequest.BaseCommit
	head := opts.PullRequest.HeadCommit

	infos, err := inspector.ListChangedFilesAsObjects(ctx, base, head)
	if err != nil {
		return model.PRReviewPayload{}, err
	}

	paths := make([]string, len(infos))
	for i, fi := range infos {
		paths[i] = fi.Path
	}
	filtered := gitinspect.FilterPaths(paths, opts.Include, opts.Exclude, opts.Reinclude)
	if len(filtered) == 0 {
		log.Printf("no changed files survived glob filters, skipping review")
		return model.PRReviewPayload{}, nil
	}

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

	var jobs []reviewJob
	if opts.EnableDiffFocused {
		for _, p := range filtered {
			jobs = append(jobs, reviewJob{filePath: p})
		}
	}
	for _, t := range opts.TopicAgents {
		jobs = append(jobs, reviewJob{topicName: t})
	}
	if len(jobs) == 0 {
		log.Printf("no review agents enabled, skipping review")
		return model.PRReviewPayload{}, nil
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}

	baseInput := reviewagents.Input{
		Repository:   opts.Repository,
		PullRequest:  opts.PullRequest,
		FilesChanged: filesChanged.String(),
		ReviewDepth:  opts.ReviewDepth,
		Guidelines:   opts.Guidelines,
	}

	results := workflow.RunParallel(ctx, jobs, maxWorkers, func(ctx context.Context, job reviewJob) (model.AgentReviewOutput, error) {
		in := baseInput
		if job.filePath != "" {
			in.TargetFilePath = job.filePath
			return reviewagents.DiffFocusedAgent(ctx, llmFactory, inspector, in)
		}
		return reviewagents.RunTopicAgent(ctx, job.topicName, llmFactory, inspector, in)
	})

	outputs := make([]model.AgentReviewOutput, 0, len(results))
	for _, r := range results {
		switch v := r.(type) {
		case model.AgentReviewOutput:
			outputs = append(outputs, v)
		case workflow.FailedInnerEvent:
			job, _ := v.Input.(reviewJob)
			log.Printf("review agent failed for job %+v: %v", job, v.Err)
		}
	}

	if len(outputs) == 0 {
		return model.PRReviewPayload{}, nil
	}

	aggregated, err := aggregateReviews(ctx, llmFactory, outputs)
	if err != nil {
		log.Printf("aggregation failed, falling back to pre-aggregation reviews: %v", err)
		return model.PRReviewPayload{AgentOutputs: outputs}, nil
	}
	return aggregated, nil
}

// tierForAggregation is fixed at the large tier: the aggregation pass
// reasons over every agent's combined output at once and benefits most
// from the strongest available model (spec.md §4.F).
func tierForAggregation() agent.Tier {
	return agent.TierLarge
}
