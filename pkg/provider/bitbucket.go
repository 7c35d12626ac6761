package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/montagne-dev/lampe/pkg/logger"
	"github.com/montagne-dev/lampe/pkg/model"
)

var bitbucketLog = logger.New("provider:bitbucket")

const bitbucketAPIBase = "https://api.bitbucket.org/2.0"

// BitbucketSink delivers descriptions and reviews via Bitbucket Cloud's
// REST API over net/http. No Go client for Bitbucket Cloud appears
// anywhere in the example pack, so this sink talks to the REST API
// directly rather than through a vendor SDK (spec.md §4.H — see
// DESIGN.md for the per-dependency justification this exception
// requires).
type BitbucketSink struct {
	httpClient *http.Client
	workspace  string
	repoSlug   string
}

// NewBitbucketSink builds a BitbucketSink. With a personal access
// token it authenticates via a static bearer token; with an OAuth2 app
// key/secret it uses the client-credentials grant.
func NewBitbucketSink(ctx context.Context, token, appKey, appSecret, workspace, repoSlug string) *BitbucketSink {
	var httpClient *http.Client
	switch {
	case token != "":
		httpClient = &http.Client{Transport: bearerTransport{token: token, base: http.DefaultTransport}}
	case appKey != "" && appSecret != "":
		cfg := clientcredentials.Config{
			ClientID:     appKey,
			ClientSecret: appSecret,
			TokenURL:     "https://bitbucket.org/site/oauth2/access_token",
		}
		httpClient = cfg.Client(ctx)
	default:
		httpClient = http.DefaultClient
	}
	return &BitbucketSink{httpClient: httpClient, workspace: workspace, repoSlug: repoSlug}
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(clone)
}

type bitbucketPullRequest struct {
	Description string `json:"description"`
}

// DeliverDescription implements Sink.
func (s *BitbucketSink) DeliverDescription(ctx context.Context, _ model.Repository, pr model.PullRequest, payload model.PRDescriptionPayload) error {
	if err := requireRemotePR(pr); err != nil {
		return err
	}
	current, err := s.getPullRequest(ctx, pr.Number)
	if err != nil {
		return err
	}
	description := UpdateOrAddTextBetweenTags(current.Description, descriptionFeature, payload.DescriptionWithTitle())
	if err := s.updatePullRequest(ctx, pr.Number, bitbucketPullRequest{Description: description}); err != nil {
		return err
	}
	bitbucketLog.Printf("updated description for %s/%s pr %d", s.workspace, s.repoSlug, pr.Number)
	return nil
}

// DeliverReview implements Sink: one general PR comment per agent
// output. Bitbucket's inline-comment API requires an anchor computed
// from the diff hunk, which this sink does not attempt; all comments
// use the lineCommentAnchor fallback.
func (s *BitbucketSink) DeliverReview(ctx context.Context, _ model.Repository, pr model.PullRequest, payload model.PRReviewPayload) error {
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
		if err := s.postComment(ctx, pr.Number, body); err != nil {
			return fmt.Errorf("provider: post comment for agent %s: %w", out.AgentName, err)
		}
	}
	bitbucketLog.Printf("delivered %d agent review(s) for %s/%s pr %d", len(payload.AgentOutputs), s.workspace, s.repoSlug, pr.Number)
	return nil
}

// HasReviewed implements Sink; spec.md §4.H scopes this check to
// GitHub only.
func (s *BitbucketSink) HasReviewed(context.Context, model.Repository, model.PullRequest) (bool, error) {
	return false, nil
}

// Healthcheck implements Sink.
func (s *BitbucketSink) Healthcheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/repositories/%s/%s", bitbucketAPIBase, s.workspace, s.repoSlug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider: bitbucket healthcheck: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("provider: bitbucket healthcheck: status %d", resp.StatusCode)
	}
	return nil
}

func (s *BitbucketSink) getPullRequest(ctx context.Context, number int) (bitbucketPullRequest, error) {
	url := fmt.Sprintf("%s/repositories/%s/%s/pullrequests/%d", bitbucketAPIBase, s.workspace, s.repoSlug, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return bitbucketPullRequest{}, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return bitbucketPullRequest{}, fmt.Errorf("provider: get pull request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return bitbucketPullRequest{}, fmt.Errorf("provider: get pull request: status %d", resp.StatusCode)
	}
	var out bitbucketPullRequest
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return bitbucketPullRequest{}, fmt.Errorf("provider: decode pull request: %w", err)
	}
	return out, nil
}

func (s *BitbucketSink) updatePullRequest(ctx context.Context, number int, body bitbucketPullRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/repositories/%s/%s/pullrequests/%d", bitbucketAPIBase, s.workspace, s.repoSlug, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider: update pull request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("provider: update pull request: status %d: %s", resp.StatusCode, b)
	}
	return nil
}

func (s *BitbucketSink) postComment(ctx context.Context, number int, text string) error {
	payload, err := json.Marshal(map[string]any{"content": map[string]string{"raw": text}})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/repositories/%s/%s/pullrequests/%d/comments", bitbucketAPIBase, s.workspace, s.repoSlug, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider: post comment: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("provider: post comment: status %d: %s", resp.StatusCode, b)
	}
	return nil
}
