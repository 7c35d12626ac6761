package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montagne-dev/lampe/pkg/model"
)

func TestConsoleSink_DeliverDescriptionNeverErrors(t *testing.T) {
	sink := NewConsoleSink()
	err := sink.DeliverDescription(context.Background(), model.Repository{Path: "/tmp/repo"}, model.PullRequest{}, model.PRDescriptionPayload{Description: "adds caching"})
	require.NoError(t, err)
}

func TestConsoleSink_DeliverReviewNeverErrors(t *testing.T) {
	sink := NewConsoleSink()
	payload := model.PRReviewPayload{AgentOutputs: []model.AgentReviewOutput{{
		AgentName: "diff-focused",
		Summary:   "looks fine",
		Reviews: []model.FileReview{{
			FilePath: "main.go",
			Summary:  "no issues",
			Comments: []model.LineComment{{Line: 10, Text: "consider renaming", Severity: model.SeverityLow}},
		}},
	}}}
	err := sink.DeliverReview(context.Background(), model.Repository{FullName: "acme/widgets"}, model.PullRequest{Number: 7}, payload)
	require.NoError(t, err)
}

func TestConsoleSink_HasReviewedAlwaysFalse(t *testing.T) {
	sink := NewConsoleSink()
	reviewed, err := sink.HasReviewed(context.Background(), model.Repository{}, model.PullRequest{Number: 1})
	require.NoError(t, err)
	assert.False(t, reviewed)
}

func TestConsoleSink_HealthcheckAlwaysNil(t *testing.T) {
	sink := NewConsoleSink()
	assert.NoError(t, sink.Healthcheck(context.Background()))
}

func TestPRLabel_LocalUsesRepoPath(t *testing.T) {
	assert.Equal(t, "/tmp/repo", prLabel(model.Repository{Path: "/tmp/repo"}, model.PullRequest{}))
}

func TestPRLabel_RemoteUsesOwnerRepoHash(t *testing.T) {
	assert.Equal(t, "acme/widgets#7", prLabel(model.Repository{FullName: "acme/widgets"}, model.PullRequest{Number: 7}))
}

func TestRequireRemotePR_RejectsLocal(t *testing.T) {
	err := requireRemotePR(model.PullRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrLocalPRMutation)
}

func TestRequireRemotePR_AllowsRemote(t *testing.T) {
	assert.NoError(t, requireRemotePR(model.PullRequest{Number: 3}))
}

func TestLineCommentAnchor_FormatsPathAndLine(t *testing.T) {
	assert.Equal(t, "main.go (Line 10)", lineCommentAnchor("main.go", 10))
}
