package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montagne-dev/lampe/pkg/config"
	"github.com/montagne-dev/lampe/pkg/console"
	"github.com/montagne-dev/lampe/pkg/model"
	"github.com/montagne-dev/lampe/pkg/pipeline"
	"github.com/montagne-dev/lampe/pkg/reviewagents"
)

func newReviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "review",
		Short:   "Generate a multi-agent code review from a pull request's diff",
		GroupID: "artifacts",
		RunE:    runReview,
	}
	addRepoFlags(cmd)
	cmd.Flags().String("review-depth", "standard", "basic|standard|comprehensive")
	cmd.Flags().String("variant", "diff-by-diff", "diff-by-diff|multi-agent")
	cmd.Flags().StringArray("guideline", nil, "Additional review guideline (repeatable)")
	return cmd
}

func runReview(cmd *cobra.Command, args []string) error {
	warnIfVerboseIneffective(cmd)

	flags, err := readRepoFlags(cmd)
	if err != nil {
		return err
	}
	depthStr, _ := cmd.Flags().GetString("review-depth")
	variant, _ := cmd.Flags().GetString("variant")
	guidelines, _ := cmd.Flags().GetStringArray("guideline")

	depth := model.ReviewDepth(depthStr)
	if !depth.Valid() {
		return fmt.Errorf("review: invalid --review-depth %q", depthStr)
	}

	env := config.LoadEnv()
	if err := requireLLMFactory(env); err != nil {
		return err
	}

	ctx, cancel := withFlagTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	sink, err := buildProvider(ctx, flags.output, env)
	if err != nil {
		return err
	}

	inspector := buildInspector(flags.repository())
	opts := pipeline.ReviewOptions{
		Repository:        flags.repository(),
		PullRequest:       flags.pullRequest(env),
		Exclude:           flags.exclude,
		Reinclude:         flags.reinclude,
		ReviewDepth:       depth,
		Guidelines:        guidelines,
		EnableDiffFocused: variant != "multi-agent",
		TopicAgents:       topicAgentsForVariant(variant),
		MaxWorkers:        env.ParallelMaxWorkers,
	}

	payload, err := pipeline.RunReviewPipeline(ctx, newLLMFactory(env), inspector, opts)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}

	if err := sink.DeliverReview(ctx, opts.Repository, opts.PullRequest, payload); err != nil {
		return fmt.Errorf("review: deliver: %w", err)
	}

	console.Success("review delivered for %s (%d agent output(s))", flags.repo, len(payload.AgentOutputs))
	return nil
}

func topicAgentsForVariant(variant string) []string {
	if variant == "multi-agent" {
		return reviewagents.TopicAgentNames()
	}
	return nil
}
