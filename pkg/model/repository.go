// Package model holds the data shapes shared across lampe's pipelines:
// Repository/PullRequest inputs, review/description outputs, and the
// workflow runtime's typed events.
package model

// Repository identifies the local clone a run operates against, and
// optionally the platform-side "owner/repo" it corresponds to.
type Repository struct {
	// Path is the local filesystem path to the git clone. Required.
	Path string
	// FullName is "owner/repo" on the hosting platform, when known.
	FullName string
}

// PullRequest describes the (base, head) commit pair a run reviews or
// describes. Number 0 means "local run" — see IsLocal.
type PullRequest struct {
	Number     int
	Title      string
	Body       string
	BaseCommit string
	BaseBranch string
	HeadCommit string
	HeadBranch string
}

// IsLocal reports whether this PullRequest is a local-only run, for
// which platform-side mutation must be refused (spec.md §3, §4.H).
func (pr PullRequest) IsLocal() bool {
	return pr.Number == 0
}
