// Package config centralizes the environment-variable reads and
// auth-priority resolution named in spec.md §6. It is the ambient
// configuration layer the distilled core (§1 "CLI argument parsing and
// environment-variable loading... out of scope") sits behind: the four
// CLI subcommands build an Env once per run and pass it down.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/montagne-dev/lampe/pkg/logger"
	"github.com/montagne-dev/lampe/pkg/model"
)

var log = logger.New("config")

// ProviderName selects a Provider Sink implementation (spec.md §4.H).
type ProviderName string

const (
	ProviderAuto      ProviderName = "auto"
	ProviderConsole   ProviderName = "console"
	ProviderGitHub    ProviderName = "github"
	ProviderGitLab    ProviderName = "gitlab"
	ProviderBitbucket ProviderName = "bitbucket"
)

// GitHubAuth carries the resolved GitHub authentication material.
type GitHubAuth struct {
	// AppID and AppPrivateKeyPEM are set when app-based auth is in use.
	AppID            string
	AppPrivateKeyPEM string
	// Token is a personal access token, used when app auth isn't
	// configured.
	Token string
}

// Mode reports which auth path this GitHubAuth resolved to.
func (a GitHubAuth) Mode() string {
	switch {
	case a.AppID != "" && a.AppPrivateKeyPEM != "":
		return "app"
	case a.Token != "":
		return "token"
	default:
		return "none"
	}
}

// BitbucketAuth carries the resolved Bitbucket authentication material.
type BitbucketAuth struct {
	Token        string
	AppKey       string
	AppSecret    string
	Workspace    string
	RepoSlug     string
}

// Mode reports which auth path this BitbucketAuth resolved to.
func (a BitbucketAuth) Mode() string {
	switch {
	case a.Token != "":
		return "token"
	case a.AppKey != "" && a.AppSecret != "":
		return "oauth2-client-credentials"
	default:
		return "none"
	}
}

// Env is the resolved view of every environment variable spec.md §6
// names. It is read once per process and never mutated afterward.
type Env struct {
	GitHubRepository     string
	GitHubAuth           GitHubAuth
	PRNumber             int
	PRNumberSet          bool
	GitLabToken          string
	Bitbucket            BitbucketAuth
	AnthropicAPIKey      string
	OpenAIAPIKey         string
	ParallelMaxWorkers   int
}

const defaultParallelMaxWorkers = 32

// LoadEnv reads and resolves all environment variables named in
// spec.md §6. Auth priority for GitHub: LAMPE_GITHUB_APP_ID +
// LAMPE_GITHUB_APP_PRIVATE_KEY (app auth) > LAMPE_GITHUB_TOKEN (PAT).
// GITHUB_TOKEN / GITHUB_API_TOKEN are consulted only during provider
// auto-detection (see DetectProvider), never as a primary credential.
func LoadEnv() Env {
	env := Env{
		GitHubRepository: os.Getenv("GITHUB_REPOSITORY"),
		GitHubAuth: GitHubAuth{
			AppID:            os.Getenv("LAMPE_GITHUB_APP_ID"),
			AppPrivateKeyPEM: os.Getenv("LAMPE_GITHUB_APP_PRIVATE_KEY"),
			Token:            os.Getenv("LAMPE_GITHUB_TOKEN"),
		},
		GitLabToken: os.Getenv("GITLAB_API_TOKEN"),
		Bitbucket: BitbucketAuth{
			Token:     os.Getenv("LAMPE_BITBUCKET_TOKEN"),
			AppKey:    os.Getenv("LAMPE_BITBUCKET_APP_KEY"),
			AppSecret: os.Getenv("LAMPE_BITBUCKET_APP_SECRET"),
			Workspace: os.Getenv("BITBUCKET_WORKSPACE"),
			RepoSlug:  os.Getenv("BITBUCKET_REPO_SLUG"),
		},
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		ParallelMaxWorkers: defaultParallelMaxWorkers,
	}

	if n, err := strconv.Atoi(os.Getenv("PR_NUMBER")); err == nil {
		env.PRNumber = n
		env.PRNumberSet = true
	}
	if bbPR := os.Getenv("BITBUCKET_PR_ID"); bbPR != "" {
		if n, err := strconv.Atoi(bbPR); err == nil {
			env.PRNumber = n
			env.PRNumberSet = true
		}
	}
	if w, err := strconv.Atoi(os.Getenv("PARALLEL_WORKFLOW_MAX_WORKERS")); err == nil && w > 0 {
		env.ParallelMaxWorkers = w
	}

	log.Printf("loaded env: github_repo=%q gh_auth=%s gitlab_token_set=%v bitbucket_auth=%s pr_number_set=%v max_workers=%d",
		env.GitHubRepository, env.GitHubAuth.Mode(), env.GitLabToken != "", env.Bitbucket.Mode(), env.PRNumberSet, env.ParallelMaxWorkers)

	return env
}

// ghAutoDetectVars is the fixed priority list consulted only when no
// explicit provider is named and no LAMPE_GITHUB_* credential is set.
var ghAutoDetectVars = []string{"GITHUB_TOKEN", "GITHUB_API_TOKEN"}

// DetectProvider implements the `auto` provider-selection rule of
// spec.md §4.H: a fixed priority list of environment variables
// (GitHub first, then GitLab, then Bitbucket), falling back to console
// when none are set.
func DetectProvider(env Env) ProviderName {
	if env.GitHubAuth.Mode() != "none" {
		return ProviderGitHub
	}
	for _, name := range ghAutoDetectVars {
		if os.Getenv(name) != "" {
			return ProviderGitHub
		}
	}
	if env.GitLabToken != "" {
		return ProviderGitLab
	}
	if env.Bitbucket.Mode() != "none" {
		return ProviderBitbucket
	}
	return ProviderConsole
}

// ResolveProvider turns an explicit/auto provider name into a concrete
// ProviderName, applying DetectProvider for "auto" or "".
func ResolveProvider(explicit string, env Env) (ProviderName, error) {
	switch ProviderName(explicit) {
	case "", ProviderAuto:
		return DetectProvider(env), nil
	case ProviderConsole, ProviderGitHub, ProviderGitLab, ProviderBitbucket:
		return ProviderName(explicit), nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrUnknownProvider, explicit)
	}
}
