package model

import "errors"

// Sentinel error kinds (spec.md §7). Callers compare with errors.Is;
// concrete errors returned by producers wrap one of these with %w.
var (
	// ErrGitFileNotFound is returned when a path is absent at the
	// requested commit.
	ErrGitFileNotFound = errors.New("git: file not found at commit")
	// ErrDiffNotFound is returned when a diff between two refs cannot
	// be produced.
	ErrDiffNotFound = errors.New("git: diff not found")
	// ErrLocalPRMutation is returned by a Provider Sink when asked to
	// mutate platform state for a PullRequest with Number == 0.
	ErrLocalPRMutation = errors.New("provider: cannot mutate a local-only pull request")
	// ErrUnknownProvider is returned when an explicit provider name
	// does not match console|github|gitlab|bitbucket.
	ErrUnknownProvider = errors.New("provider: unknown provider")
	// ErrMissingConfig is returned when a required environment
	// variable or flag is absent.
	ErrMissingConfig = errors.New("config: missing required configuration")
	// ErrWorkflowTimeout is returned when a workflow run exceeds its
	// global deadline.
	ErrWorkflowTimeout = errors.New("workflow: timed out")
	// ErrWorkflowCanceled is returned when a workflow run is canceled
	// by its caller.
	ErrWorkflowCanceled = errors.New("workflow: canceled")
)
