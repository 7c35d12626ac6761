package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/montagne-dev/lampe/pkg/config"
	"github.com/montagne-dev/lampe/pkg/gitinspect"
	"github.com/montagne-dev/lampe/pkg/model"
	"github.com/montagne-dev/lampe/pkg/provider"
)

// repoFlags are the flags common to describe and review (spec.md §6).
type repoFlags struct {
	repo         string
	repoFullName string
	base         string
	head         string
	title        string
	output       string
	exclude      []string
	reinclude    []string
	timeout      int
}

func addRepoFlags(cmd *cobra.Command) {
	cmd.Flags().String("repo", "", "Local path to the git clone (required)")
	cmd.Flags().String("repo-full-name", "", "owner/repo on the hosting platform")
	cmd.Flags().String("base", "", "Base commit SHA (required)")
	cmd.Flags().String("head", "", "Head commit SHA (required)")
	cmd.Flags().String("title", "", "Pull request title")
	cmd.Flags().String("output", "auto", "Provider: auto|console|github|gitlab|bitbucket")
	cmd.Flags().StringArray("exclude", nil, "Glob pattern to exclude (repeatable)")
	cmd.Flags().StringArray("reinclude", nil, "Glob pattern to rescue from --exclude (repeatable)")
	cmd.Flags().Int("timeout-seconds", 0, "Pipeline timeout in seconds (0 = no timeout)")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("head")
}

func readRepoFlags(cmd *cobra.Command) (repoFlags, error) {
	var f repoFlags
	var err error
	if f.repo, err = cmd.Flags().GetString("repo"); err != nil {
		return f, err
	}
	f.repoFullName, _ = cmd.Flags().GetString("repo-full-name")
	if f.base, err = cmd.Flags().GetString("base"); err != nil {
		return f, err
	}
	if f.head, err = cmd.Flags().GetString("head"); err != nil {
		return f, err
	}
	f.title, _ = cmd.Flags().GetString("title")
	f.output, _ = cmd.Flags().GetString("output")
	f.exclude, _ = cmd.Flags().GetStringArray("exclude")
	f.reinclude, _ = cmd.Flags().GetStringArray("reinclude")
	f.timeout, _ = cmd.Flags().GetInt("timeout-seconds")
	return f, nil
}

func (f repoFlags) repository() model.Repository {
	return model.Repository{Path: f.repo, FullName: f.repoFullName}
}

func (f repoFlags) pullRequest(env config.Env) model.PullRequest {
	pr := model.PullRequest{Title: f.title, BaseCommit: f.base, HeadCommit: f.head}
	if env.PRNumberSet {
		pr.Number = env.PRNumber
	}
	return pr
}

func buildProvider(ctx context.Context, explicit string, env config.Env) (provider.Sink, error) {
	name, err := config.ResolveProvider(explicit, env)
	if err != nil {
		return nil, err
	}
	return provider.New(ctx, name, env)
}

func buildInspector(repo model.Repository) *gitinspect.Inspector {
	return gitinspect.New(repo.Path)
}

// withFlagTimeout applies --timeout-seconds, if positive, as a context
// deadline for the whole pipeline run (spec.md §6).
func withFlagTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}

func requireLLMFactory(env config.Env) error {
	if env.AnthropicAPIKey == "" && env.OpenAIAPIKey == "" {
		return fmt.Errorf("%w: set ANTHROPIC_API_KEY or OPENAI_API_KEY", model.ErrMissingConfig)
	}
	return nil
}
