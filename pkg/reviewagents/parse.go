// Package reviewagents implements spec.md §4.E's review agents: fixed
// system prompts and focus-area metadata layered over the agent loop
// (package agent), sharing one JSON parsing/output contract.
package reviewagents

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/montagne-dev/lampe/pkg/logger"
	"github.com/montagne-dev/lampe/pkg/model"
)

var log = logger.New("reviewagents:parse")

// agentResponseModel is the wire shape an agent's final text must
// parse as (spec.md §4.E):
//
//	{ reviews: [ {file_path, line_comments: {<lineno or "lineno:...">: string}, summary} ], summary }
type agentResponseModel struct {
	Reviews []agentFileReview `json:"reviews"`
	Summary string            `json:"summary"`
}

type agentFileReview struct {
	FilePath     string            `json:"file_path"`
	LineComments map[string]string `json:"line_comments"`
	Summary      string            `json:"summary"`
}

// leadingDigits extracts the line number prefix from a (possibly
// legacy) line-comment key such as "42" or "42:some-anchor" (spec.md
// §9 Open Questions — "Line-comment keys... mapping non-numeric keys
// to 0").
var leadingDigits = regexp.MustCompile(`^\d+`)

func lineKeyToNumber(key string) int {
	m := leadingDigits.FindString(key)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// parseAgentResponse parses an agent's final text as agentResponseModel
// and converts it to the model.AgentReviewOutput contract. On parse
// failure it produces one catch-all FileReview carrying the raw text
// as its summary (spec.md §4.E "On parse failure...").
func parseAgentResponse(agentName string, focusAreas []string, text string, sources []model.ToolSource) model.AgentReviewOutput {
	var parsed agentResponseModel
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		log.Printf("agent %s: failed to parse JSON response: %v", agentName, err)
		return model.AgentReviewOutput{
			AgentName:  agentName,
			FocusAreas: focusAreas,
			Sources:    sources,
			Reviews: []model.FileReview{{
				FilePath: "",
				Summary:  text,
				Agent:    agentName,
			}},
			Summary: text,
		}
	}

	reviews := make([]model.FileReview, 0, len(parsed.Reviews))
	for _, r := range parsed.Reviews {
		fr := model.FileReview{
			FilePath:     r.FilePath,
			LineComments: r.LineComments,
			Summary:      r.Summary,
			Agent:        agentName,
		}
		for key, text := range r.LineComments {
			fr.Comments = append(fr.Comments, model.LineComment{
				Line: lineKeyToNumber(key),
				Text: text,
			})
		}
		reviews = append(reviews, fr)
	}

	return model.AgentReviewOutput{
		AgentName:  agentName,
		FocusAreas: focusAreas,
		Reviews:    reviews,
		Sources:    sources,
		Summary:    parsed.Summary,
	}
}
