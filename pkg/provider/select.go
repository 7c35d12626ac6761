package provider

import (
	"context"
	"fmt"

	"github.com/montagne-dev/lampe/pkg/config"
	"github.com/montagne-dev/lampe/pkg/model"
)

// New builds the Sink named by provider, resolving credentials from
// env (spec.md §4.H, §6).
func New(ctx context.Context, provider config.ProviderName, env config.Env) (Sink, error) {
	switch provider {
	case config.ProviderConsole:
		return NewConsoleSink(), nil
	case config.ProviderGitHub:
		// App-based auth (LAMPE_GITHUB_APP_ID/LAMPE_GITHUB_APP_PRIVATE_KEY)
		// requires exchanging a signed JWT for an installation token, a
		// step this sink does not perform; only token auth is wired here.
		token := env.GitHubAuth.Token
		if token == "" {
			return nil, fmt.Errorf("%w: github provider selected but no usable credential (LAMPE_GITHUB_TOKEN) resolved", model.ErrMissingConfig)
		}
		return NewGitHubSink(ctx, token), nil
	case config.ProviderGitLab:
		if env.GitLabToken == "" {
			return nil, fmt.Errorf("%w: gitlab provider selected but GITLAB_API_TOKEN is unset", model.ErrMissingConfig)
		}
		return NewGitLabSink(env.GitLabToken)
	case config.ProviderBitbucket:
		if env.Bitbucket.Mode() == "none" {
			return nil, fmt.Errorf("%w: bitbucket provider selected but no credential resolved", model.ErrMissingConfig)
		}
		return NewBitbucketSink(ctx, env.Bitbucket.Token, env.Bitbucket.AppKey, env.Bitbucket.AppSecret, env.Bitbucket.Workspace, env.Bitbucket.RepoSlug), nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownProvider, provider)
	}
}
