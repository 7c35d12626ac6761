package provider

import (
	"context"
	"fmt"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/montagne-dev/lampe/pkg/logger"
	"github.com/montagne-dev/lampe/pkg/model"
)

var gitlabLog = logger.New("provider:gitlab")

// GitLabSink delivers descriptions as merge request description
// updates and reviews as merge request discussions, via
// gitlab.com/gitlab-org/api/client-go (spec.md §4.H).
type GitLabSink struct {
	client *gitlab.Client
}

// NewGitLabSink builds a GitLabSink authenticated with a personal
// access token.
func NewGitLabSink(token string) (*GitLabSink, error) {
	client, err := gitlab.NewClient(token)
	if err != nil {
		return nil, fmt.Errorf("provider: new gitlab client: %w", err)
	}
	return &GitLabSink{client: client}, nil
}

// DeliverDescription implements Sink.
func (s *GitLabSink) DeliverDescription(_ context.Context, repository model.Repository, pr model.PullRequest, payload model.PRDescriptionPayload) error {
	if err := requireRemotePR(pr); err != nil {
		return err
	}
	mr, _, err := s.client.MergeRequests.GetMergeRequest(repository.FullName, pr.Number, nil)
	if err != nil {
		return fmt.Errorf("provider: get merge request: %w", err)
	}
	description := UpdateOrAddTextBetweenTags(mr.Description, descriptionFeature, payload.DescriptionWithTitle())
	_, _, err = s.client.MergeRequests.UpdateMergeRequest(repository.FullName, pr.Number, &gitlab.UpdateMergeRequestOptions{
		Description: gitlab.Ptr(description),
	})
	if err != nil {
		return fmt.Errorf("provider: update merge request description: %w", err)
	}
	gitlabLog.Printf("updated description for %s!%d", repository.FullName, pr.Number)
	return nil
}

// DeliverReview implements Sink: one discussion thread per agent
// output, general comments noting inline anchors the API can't place
// precisely (spec.md §4.H).
func (s *GitLabSink) DeliverReview(_ context.Context, repository model.Repository, pr model.PullRequest, payload model.PRReviewPayload) error {
	if err := requireRemotePR(pr); err != nil {
		return err
	}
	for _, out := range payload.AgentOutputs {
		body := out.Summary
		for _, fr := range out.Reviews {
			for _, c := range fr.Comments {
				body += fmt.Sprintf("\n\n%s: %s", lineCommentAnchor(fr.FilePath, c.Line), c.Text)
			}
			if len(fr.Comments) == 0 && fr.Summary != "" {
				body += "\n\n" + fr.FilePath + ": " + fr.Summary
			}
		}
		body = UpdateOrAddTextBetweenTags("", reviewFeature, body)
		_, _, err := s.client.Discussions.CreateMergeRequestDiscussion(repository.FullName, pr.Number, &gitlab.CreateMergeRequestDiscussionOptions{
			Body: gitlab.Ptr(body),
		})
		if err != nil {
			return fmt.Errorf("provider: create merge request discussion for agent %s: %w", out.AgentName, err)
		}
	}
	gitlabLog.Printf("delivered %d agent review(s) for %s!%d", len(payload.AgentOutputs), repository.FullName, pr.Number)
	return nil
}

// HasReviewed implements Sink; spec.md §4.H scopes this check to
// GitHub only, so other sinks report false, nil.
func (s *GitLabSink) HasReviewed(context.Context, model.Repository, model.PullRequest) (bool, error) {
	return false, nil
}

// Healthcheck implements Sink.
func (s *GitLabSink) Healthcheck(context.Context) error {
	_, _, err := s.client.Users.CurrentUser()
	if err != nil {
		return fmt.Errorf("provider: gitlab healthcheck: %w", err)
	}
	return nil
}
