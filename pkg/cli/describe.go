package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montagne-dev/lampe/pkg/config"
	"github.com/montagne-dev/lampe/pkg/console"
	"github.com/montagne-dev/lampe/pkg/pipeline"
)

func newDescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "Generate a pull request description from its diff",
		GroupID: "artifacts",
		RunE:    runDescribe,
	}
	addRepoFlags(cmd)
	cmd.Flags().String("variant", "default", "Description variant: default|agentic")
	cmd.Flags().StringArray("files-reinclude-patterns", nil, "Accepted and not read by either variant; the default variant takes reinclude globs from --reinclude")
	cmd.Flags().Int("max-tokens", 100000, "Token budget the diff is truncated to before the LLM call")
	return cmd
}

func runDescribe(cmd *cobra.Command, args []string) error {
	warnIfVerboseIneffective(cmd)

	flags, err := readRepoFlags(cmd)
	if err != nil {
		return err
	}
	variant, _ := cmd.Flags().GetString("variant")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")

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
	opts := pipeline.DescriptionOptions{
		Repository:       flags.repository(),
		PullRequest:      flags.pullRequest(env),
		Include:          nil,
		Exclude:          flags.exclude,
		Reinclude:        flags.reinclude,
		TruncationTokens: maxTokens,
		Agentic:          variant == "agentic",
	}

	payload, err := pipeline.RunDescriptionPipeline(ctx, newLLMFactory(env), inspector, opts)
	if err != nil {
		return fmt.Errorf("describe: %w", err)
	}

	if err := sink.DeliverDescription(ctx, opts.Repository, opts.PullRequest, payload); err != nil {
		return fmt.Errorf("describe: deliver: %w", err)
	}

	console.Success("description delivered for %s", flags.repo)
	return nil
}
