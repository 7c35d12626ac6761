package cli

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montagne-dev/lampe/pkg/config"
	"github.com/montagne-dev/lampe/pkg/model"
)

func TestReadRepoFlags_RoundTripsSetValues(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addRepoFlags(cmd)
	require.NoError(t, cmd.Flags().Set("repo", "/tmp/repo"))
	require.NoError(t, cmd.Flags().Set("base", "base-sha"))
	require.NoError(t, cmd.Flags().Set("head", "head-sha"))
	require.NoError(t, cmd.Flags().Set("exclude", "**/*.md"))
	require.NoError(t, cmd.Flags().Set("timeout-seconds", "30"))

	f, err := readRepoFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/repo", f.repo)
	assert.Equal(t, "base-sha", f.base)
	assert.Equal(t, "head-sha", f.head)
	assert.Equal(t, []string{"**/*.md"}, f.exclude)
	assert.Equal(t, 30, f.timeout)
	assert.Equal(t, "auto", f.output)
}

func TestRepoFlags_Repository(t *testing.T) {
	f := repoFlags{repo: "/tmp/repo", repoFullName: "acme/widgets"}
	repo := f.repository()
	assert.Equal(t, "/tmp/repo", repo.Path)
	assert.Equal(t, "acme/widgets", repo.FullName)
}

func TestRepoFlags_PullRequest_UsesEnvPRNumberWhenSet(t *testing.T) {
	f := repoFlags{base: "b", head: "h", title: "t"}
	pr := f.pullRequest(config.Env{PRNumber: 7, PRNumberSet: true})
	assert.Equal(t, 7, pr.Number)
	assert.Equal(t, "b", pr.BaseCommit)
}

func TestRepoFlags_PullRequest_LocalWhenPRNumberUnset(t *testing.T) {
	f := repoFlags{base: "b", head: "h"}
	pr := f.pullRequest(config.Env{})
	assert.True(t, pr.IsLocal())
}

func TestWithFlagTimeout_ZeroMeansNoDeadline(t *testing.T) {
	ctx, cancel := withFlagTimeout(context.Background(), 0)
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline)
}

func TestWithFlagTimeout_PositiveAppliesDeadline(t *testing.T) {
	ctx, cancel := withFlagTimeout(context.Background(), 30)
	defer cancel()
	deadline, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), deadline, 2*time.Second)
}

func TestRequireLLMFactory_ErrorsWithNoKeys(t *testing.T) {
	err := requireLLMFactory(config.Env{})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMissingConfig)
}

func TestRequireLLMFactory_OKWithEitherKey(t *testing.T) {
	assert.NoError(t, requireLLMFactory(config.Env{AnthropicAPIKey: "x"}))
	assert.NoError(t, requireLLMFactory(config.Env{OpenAIAPIKey: "y"}))
}
