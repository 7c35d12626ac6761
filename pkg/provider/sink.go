package provider

import (
	"context"
	"strconv"

	"github.com/montagne-dev/lampe/pkg/model"
)

// Sink is spec.md §4.H's provider abstraction: somewhere to deliver a
// generated description or review, and (for GitHub only) to check
// whether a review has already been posted.
type Sink interface {
	DeliverDescription(ctx context.Context, repo model.Repository, pr model.PullRequest, payload model.PRDescriptionPayload) error
	DeliverReview(ctx context.Context, repo model.Repository, pr model.PullRequest, payload model.PRReviewPayload) error
	// HasReviewed reports whether this sink has already delivered a
	// review for pr. Sinks other than GitHub report false, nil — they
	// have no equivalent check (spec.md §4.H "GitHub only").
	HasReviewed(ctx context.Context, repo model.Repository, pr model.PullRequest) (bool, error)
	Healthcheck(ctx context.Context) error
}

// requireRemotePR refuses any mutating call against a local-only run
// (spec.md §3, §4.H: PullRequest.Number == 0 means there is no remote
// PR to mutate).
func requireRemotePR(pr model.PullRequest) error {
	if pr.IsLocal() {
		return model.ErrLocalPRMutation
	}
	return nil
}

// lineCommentAnchor formats the fallback label spec.md §4.H uses when a
// line comment cannot be anchored inline on the platform (e.g. the line
// falls outside the diff's context window): it becomes a general PR
// comment prefixed with this label.
func lineCommentAnchor(filePath string, line int) string {
	return filePath + " (Line " + strconv.Itoa(line) + ")"
}
