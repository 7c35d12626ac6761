package provider

import (
	"context"
	"fmt"

	"github.com/montagne-dev/lampe/pkg/console"
	"github.com/montagne-dev/lampe/pkg/model"
)

// ConsoleSink prints descriptions and reviews to stdout, under an
// informational header line on stderr, instead of delivering them to a
// hosting platform (spec.md §4.H, §7). It is the
// fallback when no provider auto-detects and the default for local
// runs, so it never applies the local-PR mutation guard.
type ConsoleSink struct{}

// NewConsoleSink builds a ConsoleSink.
func NewConsoleSink() *ConsoleSink { return &ConsoleSink{} }

// DeliverDescription implements Sink.
func (ConsoleSink) DeliverDescription(_ context.Context, repo model.Repository, pr model.PullRequest, payload model.PRDescriptionPayload) error {
	console.Info("description for %s", prLabel(repo, pr))
	fmt.Println(payload.DescriptionWithTitle())
	return nil
}

// DeliverReview implements Sink.
func (ConsoleSink) DeliverReview(_ context.Context, repo model.Repository, pr model.PullRequest, payload model.PRReviewPayload) error {
	console.Info("review for %s", prLabel(repo, pr))
	fmt.Println(payload.Markdown())
	return nil
}

// HasReviewed implements Sink; the console has no durable state to
// check against, so it always reports false.
func (ConsoleSink) HasReviewed(context.Context, model.Repository, model.PullRequest) (bool, error) {
	return false, nil
}

// Healthcheck implements Sink; stdout/stderr are always available.
func (ConsoleSink) Healthcheck(context.Context) error { return nil }

func prLabel(repo model.Repository, pr model.PullRequest) string {
	if pr.IsLocal() {
		return repo.Path
	}
	return fmt.Sprintf("%s#%d", repo.FullName, pr.Number)
}
