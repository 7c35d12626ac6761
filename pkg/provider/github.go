package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"

	"github.com/montagne-dev/lampe/pkg/logger"
	"github.com/montagne-dev/lampe/pkg/model"
)

var githubLog = logger.New("provider:github")

const descriptionFeature = "description"
const reviewFeature = "review"

// GitHubSink delivers descriptions as PR body updates and reviews as
// batched PR review comments, via google/go-github (spec.md §4.H).
type GitHubSink struct {
	client *github.Client
}

// NewGitHubSink builds a GitHubSink authenticated with a personal
// access token. App-based auth (spec.md §6 LAMPE_GITHUB_APP_ID /
// LAMPE_GITHUB_APP_PRIVATE_KEY) is not converted into a token anywhere:
// provider.New passes only LAMPE_GITHUB_TOKEN here and returns
// model.ErrMissingConfig when that is unset.
func NewGitHubSink(ctx context.Context, token string) *GitHubSink {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	return &GitHubSink{client: github.NewClient(httpClient)}
}

func splitFullName(fullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok {
		return "", "", fmt.Errorf("provider: invalid repository full name %q, expected owner/repo", fullName)
	}
	return owner, repo, nil
}

// DeliverDescription implements Sink: it reads the PR's current body,
// updates the tagged description region, and writes it back.
func (s *GitHubSink) DeliverDescription(ctx context.Context, repository model.Repository, pr model.PullRequest, payload model.PRDescriptionPayload) error {
	if err := requireRemotePR(pr); err != nil {
		return err
	}
	owner, repo, err := splitFullName(repository.FullName)
	if err != nil {
		return err
	}

	current, _, err := s.client.PullRequests.Get(ctx, owner, repo, pr.Number)
	if err != nil {
		return fmt.Errorf("provider: get pull request: %w", err)
	}

	body := UpdateOrAddTextBetweenTags(current.GetBody(), descriptionFeature, payload.DescriptionWithTitle())
	_, _, err = s.client.PullRequests.Edit(ctx, owner, repo, pr.Number, &github.PullRequest{Body: &body})
	if err != nil {
		return fmt.Errorf("provider: update pull request body: %w", err)
	}
	githubLog.Printf("updated description for %s/%s#%d", owner, repo, pr.Number)
	return nil
}

// DeliverReview implements Sink: it posts one PR review per agent
// output, with an inline comment for every line comment whose line is
// positive, and general notes in the review body for line-0 comments
// and for file summaries without line comments (spec.md §4.H). An
// inline comment GitHub cannot anchor is not moved into the body: the
// CreateReview call fails and its error is returned.
func (s *GitHubSink) DeliverReview(ctx context.Context, repository model.Repository, pr model.PullRequest, payload model.PRReviewPayload) error {
	if err := requireRemotePR(pr); err != nil {
		return err
	}
	owner, repo, err := splitFullName(repository.FullName)
	if err != nil {
		return err
	}

	for _, out := range payload.AgentOutputs {
		var comments []*github.DraftReviewComment
		var generalNotes []string
		for _, fr := range out.Reviews {
			if len(fr.Comments) == 0 && fr.Summary != "" {
				generalNotes = append(generalNotes, fr.FilePath+": "+fr.Summary)
				continue
			}
			for _, c := range fr.Comments {
				if c.Line <= 0 {
					generalNotes = append(generalNotes, lineCommentAnchor(fr.FilePath, c.Line)+": "+c.Text)
					continue
				}
				comments = append(comments, &github.DraftReviewComment{
					Path: github.Ptr(fr.FilePath),
					Line: github.Ptr(c.Line),
					Body: github.Ptr(c.Text),
				})
			}
		}

		body := out.Summary
		for _, note := range generalNotes {
			body += "\n\n" + note
		}
		body = UpdateOrAddTextBetweenTags("", reviewFeature, body)

		_, _, err := s.client.PullRequests.CreateReview(ctx, owner, repo, pr.Number, &github.PullRequestReviewRequest{
			Body:     github.Ptr(body),
			Event:    github.Ptr("COMMENT"),
			Comments: comments,
		})
		if err != nil {
			return fmt.Errorf("provider: create review for agent %s: %w", out.AgentName, err)
		}
	}
	githubLog.Printf("delivered %d agent review(s) for %s/%s#%d", len(payload.AgentOutputs), owner, repo, pr.Number)
	return nil
}

// HasReviewed implements Sink: it resolves the authenticated identity
// and reports whether that identity has left at least one issue
// comment or inline review comment on the PR (spec.md §4.H "GitHub
// only").
func (s *GitHubSink) HasReviewed(ctx context.Context, repository model.Repository, pr model.PullRequest) (bool, error) {
	if pr.IsLocal() {
		return false, nil
	}
	owner, repo, err := splitFullName(repository.FullName)
	if err != nil {
		return false, err
	}

	me, _, err := s.client.Users.Get(ctx, "")
	if err != nil {
		return false, fmt.Errorf("provider: get authenticated user: %w", err)
	}
	login := me.GetLogin()

	issueComments, _, err := s.client.Issues.ListComments(ctx, owner, repo, pr.Number, nil)
	if err != nil {
		return false, fmt.Errorf("provider: list issue comments: %w", err)
	}
	for _, c := range issueComments {
		if c.GetUser().GetLogin() == login {
			return true, nil
		}
	}

	reviewComments, _, err := s.client.PullRequests.ListComments(ctx, owner, repo, pr.Number, nil)
	if err != nil {
		return false, fmt.Errorf("provider: list review comments: %w", err)
	}
	for _, c := range reviewComments {
		if c.GetUser().GetLogin() == login {
			return true, nil
		}
	}

	return false, nil
}

// Healthcheck implements Sink: a minimal authenticated API call.
func (s *GitHubSink) Healthcheck(ctx context.Context) error {
	_, _, err := s.client.Users.Get(ctx, "")
	if err != nil {
		return fmt.Errorf("provider: github healthcheck: %w", err)
	}
	return nil
}
