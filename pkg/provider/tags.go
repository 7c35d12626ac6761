// Package provider implements spec.md §4.H's Provider Sink: delivering
// descriptions and reviews to a hosting platform (or the console),
// behind one interface with console/github/gitlab/bitbucket
// implementations.
package provider

import (
	"fmt"
	"strings"
)

func startTag(feature string) string { return fmt.Sprintf("[](lampe-sdk-%s-start)", feature) }
func endTag(feature string) string   { return fmt.Sprintf("[](lampe-sdk-%s-end)", feature) }

// UpdateOrAddTextBetweenTags implements spec.md §4.H's idempotent
// PR-body update: replace the first occurrence of the tagged region
// for feature, or append a new tagged region if none exists. Only the
// first occurrence is ever touched, so a body with the markers
// duplicated by hand is left otherwise alone.
func UpdateOrAddTextBetweenTags(body, feature, newText string) string {
	start := startTag(feature)
	end := endTag(feature)

	startIdx := strings.Index(body, start)
	if startIdx == -1 {
		return appendTaggedRegion(body, start, end, newText)
	}
	contentStart := startIdx + len(start)
	endIdx := strings.Index(body[contentStart:], end)
	if endIdx == -1 {
		// A start marker with no matching end is treated as absent
		// (spec.md §4.H): append a fresh, well-formed region rather than
		// guessing at the malformed one's extent.
		return appendTaggedRegion(body, start, end, newText)
	}
	endIdx += contentStart

	var b strings.Builder
	b.WriteString(body[:startIdx])
	b.WriteString(start)
	b.WriteString("\n")
	b.WriteString(newText)
	b.WriteString("\n")
	b.WriteString(body[endIdx:])
	return b.String()
}

func appendTaggedRegion(body, start, end, newText string) string {
	var b strings.Builder
	b.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	if body != "" {
		b.WriteString("\n")
	}
	b.WriteString(start)
	b.WriteString("\n")
	b.WriteString(newText)
	b.WriteString("\n")
	b.WriteString(end)
	return b.String()
}
