package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/montagne-dev/lampe/pkg/agent"
	"github.com/montagne-dev/lampe/pkg/model"
	"github.com/montagne-dev/lampe/pkg/reviewagents"
)

// aggregationSystemPrompt asks the model to dedup and clean up the
// combined per-agent findings (spec.md §4.F aggregation pass: "dedup
// by file+line±2+same-issue, hallucination removal, noise removal,
// non-actionable removal").
const aggregationSystemPrompt = `You are merging code review findings produced by several independent review
agents into one clean set. You will be given a JSON array of agent outputs,
each with an agent name, focus areas, per-file reviews (with line comments),
and a summary.

Produce a single merged result:
- Remove duplicate comments: two comments on the same file within 2 lines of
  each other about the same underlying issue are one comment, keep the clearer
  wording.
- Remove comments that are clearly hallucinated (reference code, lines, or
  files that do not plausibly exist given what was shown).
- Remove noise: comments that restate what the diff already makes obvious, or
  that are not actionable feedback.
- Preserve genuinely distinct findings from different agents, even on the same
  file.

Respond with ONLY a JSON object of the form:
{
  "agent_outputs": [
    {"agent_name": "...", "focus_areas": ["..."],
     "reviews": [{"file_path": "...", "line_comments": {"42": "..."}, "summary": "..."}],
     "summary": "..."}
  ]
}`

type wireAgentOutput struct {
	AgentName  string            `json:"agent_name"`
	FocusAreas []string          `json:"focus_areas"`
	Reviews    []wireFileReview  `json:"reviews"`
	Summary    string            `json:"summary"`
}

type wireFileReview struct {
	FilePath     string            `json:"file_path"`
	LineComments map[string]string `json:"line_comments"`
	Summary      string            `json:"summary"`
}

type aggregatedReviewsModel struct {
	AgentOutputs []wireAgentOutput `json:"agent_outputs"`
}

func toWire(outputs []model.AgentReviewOutput) []wireAgentOutput {
	wire := make([]wireAgentOutput, 0, len(outputs))
	for _, o := range outputs {
		reviews := make([]wireFileReview, 0, len(o.Reviews))
		for _, r := range o.Reviews {
			reviews = append(reviews, wireFileReview{FilePath: r.FilePath, LineComments: r.LineComments, Summary: r.Summary})
		}
		wire = append(wire, wireAgentOutput{AgentName: o.AgentName, FocusAreas: o.FocusAreas, Reviews: reviews, Summary: o.Summary})
	}
	return wire
}

func fromWire(parsed aggregatedReviewsModel) []model.AgentReviewOutput {
	outputs := make([]model.AgentReviewOutput, 0, len(parsed.AgentOutputs))
	for _, o := range parsed.AgentOutputs {
		reviews := make([]model.FileReview, 0, len(o.Reviews))
		for _, r := range o.Reviews {
			fr := model.FileReview{FilePath: r.FilePath, LineComments: r.LineComments, Summary: r.Summary, Agent: o.AgentName}
			for key, text := range r.LineComments {
				fr.Comments = append(fr.Comments, model.LineComment{Line: lineKeyToNumber(key), Text: text})
			}
			reviews = append(reviews, fr)
		}
		outputs = append(outputs, model.AgentReviewOutput{AgentName: o.AgentName, FocusAreas: o.FocusAreas, Reviews: reviews, Summary: o.Summary})
	}
	return outputs
}

// aggregateReviews runs the aggregation LLM pass over every per-agent
// output at once. On parse failure the caller falls back to the
// pre-aggregation outputs (spec.md §4.F).
func aggregateReviews(ctx context.Context, llmFactory reviewagents.LLMFactory, outputs []model.AgentReviewOutput) (model.PRReviewPayload, error) {
	llm, err := llmFactory(tierForAggregation())
	if err != nil {
		return model.PRReviewPayload{}, err
	}

	payload, err := json.Marshal(toWire(outputs))
	if err != nil {
		return model.PRReviewPayload{}, err
	}

	messages := []agent.Message{
		{Role: agent.RoleSystem, Content: aggregationSystemPrompt},
		{Role: agent.RoleUser, Content: string(payload)},
	}
	resp, err := llm.Chat(ctx, messages, nil)
	if err != nil {
		return model.PRReviewPayload{}, fmt.Errorf("aggregation chat: %w", err)
	}

	var parsed aggregatedReviewsModel
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return model.PRReviewPayload{}, fmt.Errorf("aggregation response parse: %w", err)
	}

	return model.PRReviewPayload{AgentOutputs: fromWire(parsed)}, nil
}
