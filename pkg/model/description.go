package model

// DescriptionSectionHeader is prefixed onto a description's text by the
// DescriptionWithTitle projection (spec.md §3).
const DescriptionSectionHeader = "## Summary by lampe\n\n"

// PRDescriptionPayload is the description artifact delivered to a
// Provider Sink.
type PRDescriptionPayload struct {
	Description string
}

// DescriptionWithTitle returns the description prefixed with a stable
// section header.
func (p PRDescriptionPayload) DescriptionWithTitle() string {
	return DescriptionSectionHeader + p.Description
}
