package model

import (
	"fmt"
	"strings"
)

// ReviewDepth selects model tier and filtering thresholds for review
// agents (spec.md §3).
type ReviewDepth string

const (
	ReviewDepthBasic         ReviewDepth = "basic"
	ReviewDepthStandard      ReviewDepth = "standard"
	ReviewDepthComprehensive ReviewDepth = "comprehensive"
)

// Valid reports whether d is one of the three recognized tiers.
func (d ReviewDepth) Valid() bool {
	switch d {
	case ReviewDepthBasic, ReviewDepthStandard, ReviewDepthComprehensive:
		return true
	}
	return false
}

// Severity is a FileReview line comment's severity. Ordering is total:
// critical < high < medium < low.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// Rank returns severity's sort position; unknown severities sort last.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// Less reports whether s sorts before other under the total severity
// ordering critical < high < medium < low.
func (s Severity) Less(other Severity) bool {
	return s.Rank() < other.Rank()
}

// LineComment is a single structured review comment anchored to a line
// in the head version of a file.
type LineComment struct {
	Line     int
	Text     string
	Severity Severity
	Category string
}

// FileReview holds a review agent's findings for one changed file.
//
// A FileReview carries both the legacy string-keyed map (line number or
// "lineno:..." as a string, per spec.md §4.E) and the structured
// Comments slice; producers should populate both when they can.
type FileReview struct {
	FilePath string
	// LineComments maps a line-number string (or legacy non-numeric key)
	// to free-text comment, exactly as emitted by the LLM's JSON answer.
	LineComments map[string]string
	Comments     []LineComment
	Summary      string
	// Agent is the originating review agent's name, when known.
	Agent string
}

// ToolSource is one entry in an agent's tool-use trace: the tool
// invoked, the arguments it was called with, and its raw output.
type ToolSource struct {
	Tool   string
	Args   map[string]any
	Output string
}

// AgentReviewOutput is one review agent's complete output.
type AgentReviewOutput struct {
	AgentName  string
	FocusAreas []string
	Reviews    []FileReview
	Sources    []ToolSource
	Summary    string
}

// PRReviewPayload is the aggregated review artifact delivered to a
// Provider Sink.
type PRReviewPayload struct {
	AgentOutputs []AgentReviewOutput
}

// Markdown composes the §3 markdown projection: agent sections, then
// per-file subsections, then line comments and sources.
func (p PRReviewPayload) Markdown() string {
	var b strings.Builder
	for i, out := range p.AgentOutputs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n", out.AgentName, out.Summary)
		for _, r := range out.Reviews {
			fmt.Fprintf(&b, "\n### %s\n\n%s\n", r.FilePath, r.Summary)
			for _, c := range r.Comments {
				fmt.Fprintf(&b, "- L%d (%s): %s\n", c.Line, c.Severity, c.Text)
			}
			for key, text := range r.LineComments {
				fmt.Fprintf(&b, "- %s: %s\n", key, text)
			}
		}
		if len(out.Sources) > 0 {
			b.WriteString("\n<details><summary>Sources</summary>\n\n")
			for _, s := range out.Sources {
				fmt.Fprintf(&b, "- `%s(%v)` → %s\n", s.Tool, s.Args, s.Output)
			}
			b.WriteString("\n</details>\n")
		}
	}
	return b.String()
}
