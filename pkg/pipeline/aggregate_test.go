package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montagne-dev/lampe/pkg/agent"
	"github.com/montagne-dev/lampe/pkg/model"
)

type fakeLLM struct {
	content string
	err     error
}

func (f *fakeLLM) Chat(ctx context.Context, messages []agent.Message, tools []agent.ToolSchema) (agent.Response, error) {
	if f.err != nil {
		return agent.Response{}, f.err
	}
	return agent.Response{Content: f.content}, nil
}

func TestToWireFromWire_RoundTripsLineComments(t *testing.T) {
	outputs := []model.AgentReviewOutput{{
		AgentName:  "diff-focused",
		FocusAreas: []string{"correctness"},
		Summary:    "overall fine",
		Reviews: []model.FileReview{{
			FilePath:     "main.go",
			LineComments: map[string]string{"10": "consider renaming"},
			Summary:      "minor",
		}},
	}}

	wire := toWire(outputs)
	require.Len(t, wire, 1)
	assert.Equal(t, "diff-focused", wire[0].AgentName)

	back := fromWire(aggregatedReviewsModel{AgentOutputs: wire})
	require.Len(t, back, 1)
	require.Len(t, back[0].Reviews, 1)
	require.Len(t, back[0].Reviews[0].Comments, 1)
	assert.Equal(t, 10, back[0].Reviews[0].Comments[0].Line)
	assert.Equal(t, "consider renaming", back[0].Reviews[0].Comments[0].Text)
}

func TestAggregateReviews_ParsesWellFormedResponse(t *testing.T) {
	llm := &fakeLLM{content: `{"agent_outputs":[{"agent_name":"merged","focus_areas":["correctness"],"reviews":[{"file_path":"a.go","line_comments":{"5":"fix this"},"summary":"s"}],"summary":"overall"}]}`}
	factory := func(tier agent.Tier) (agent.LLM, error) { return llm, nil }

	payload, err := aggregateReviews(context.Background(), factory, []model.AgentReviewOutput{{AgentName: "a"}})
	require.NoError(t, err)
	require.Len(t, payload.AgentOutputs, 1)
	assert.Equal(t, "merged", payload.AgentOutputs[0].AgentName)
}

func TestAggregateReviews_MalformedResponseErrors(t *testing.T) {
	llm := &fakeLLM{content: "not json"}
	factory := func(tier agent.Tier) (agent.LLM, error) { return llm, nil }

	_, err := aggregateReviews(context.Background(), factory, []model.AgentReviewOutput{{AgentName: "a"}})
	require.Error(t, err)
}
