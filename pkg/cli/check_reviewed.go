package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/montagne-dev/lampe/pkg/config"
	"github.com/montagne-dev/lampe/pkg/console"
	"github.com/montagne-dev/lampe/pkg/model"
)

// errNotReviewed signals "not reviewed" via a plain error return —
// cli.Execute maps any RunE error to exit 1, matching spec.md §6's
// "exit 0 if the authenticated identity has reviewed PR, 1 otherwise;
// exit 1 on provider error" (both failure cases collapse to exit 1).
var errNotReviewed = fmt.Errorf("pull request has not been reviewed")

func newCheckReviewedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check-reviewed",
		Short:   "Report whether this run's provider has already reviewed a pull request",
		GroupID: "diagnostics",
		RunE:    runCheckReviewed,
	}
	cmd.Flags().String("repo", "", "Local path to the git clone (required)")
	cmd.Flags().String("repo-full-name", "", "owner/repo on the hosting platform")
	cmd.Flags().String("output", "auto", "Provider: auto|console|github|gitlab|bitbucket")
	cmd.Flags().Int("pr", 0, "Pull request number (required)")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("pr")
	return cmd
}

func runCheckReviewed(cmd *cobra.Command, args []string) error {
	warnIfVerboseIneffective(cmd)

	repoPath, _ := cmd.Flags().GetString("repo")
	repoFullName, _ := cmd.Flags().GetString("repo-full-name")
	output, _ := cmd.Flags().GetString("output")
	prNumber, _ := cmd.Flags().GetInt("pr")

	env := config.LoadEnv()
	ctx := cmd.Context()

	sink, err := buildProvider(ctx, output, env)
	if err != nil {
		return err
	}

	repo := model.Repository{Path: repoPath, FullName: repoFullName}
	pr := model.PullRequest{Number: prNumber}

	reviewed, err := sink.HasReviewed(ctx, repo, pr)
	if err != nil {
		return fmt.Errorf("check-reviewed: %w", err)
	}
	if !reviewed {
		console.Info("pull request %d has not been reviewed", prNumber)
		return errNotReviewed
	}
	console.Success("pull request %d has already been reviewed", prNumber)
	return nil
}
