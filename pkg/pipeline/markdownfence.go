package pipeline

import "strings"

// extractFencedBlock finds the first fenced code block in s whose
// language tag equals language (case-insensitive), and returns its
// inner content. When matchAnyLanguage is true, language is ignored
// and the first fenced block of any language (including none) is
// matched. A fenced block nested inside the matched block is
// preserved verbatim in the returned content rather than treated as
// the block's close.
//
// Ported from the original implementation's extract_md_code_block
// (a regex over optional leading text, the opening fence, a lazily
// captured body tolerant of one level of nesting, and the closing
// fence); Go's RE2 engine has no backreferences or lookahead, so this
// is a line-oriented scan instead of a single pattern.
func extractFencedBlock(s, language string, matchAnyLanguage bool) (string, bool) {
	lines := strings.Split(s, "\n")

	openIdx := -1
	for i, line := range lines {
		tag, ok := fenceTag(line)
		if !ok {
			continue
		}
		if matchAnyLanguage || strings.EqualFold(tag, language) {
			openIdx = i
			break
		}
	}
	if openIdx == -1 {
		return "", false
	}

	depth := 0
	for i := openIdx + 1; i < len(lines); i++ {
		tag, ok := fenceTag(lines[i])
		if !ok {
			continue
		}
		if tag == "" {
			if depth == 0 {
				return strings.Join(lines[openIdx+1:i], "\n"), true
			}
			depth--
			continue
		}
		depth++
	}
	return "", false
}

// fenceTag reports whether line is a bare fence marker line (```
// optionally followed directly by a language tag, nothing else) and
// returns the tag.
func fenceTag(line string) (string, bool) {
	trimmed := strings.TrimRight(line, "\r")
	if !strings.HasPrefix(trimmed, "```") {
		return "", false
	}
	return trimmed[3:], true
}

// stripWholeFence implements spec.md §4.G's markdown-code-block
// remover: it returns the inside of the first ```md/```markdown fenced
// block, or failing that of the first no-language fenced block, and
// drops any text around that block; a reply with neither is only
// trimmed. A reply whose fence carries any other language tag, or an
// extracted result that still contains a fenced block, is returned
// without further unwrapping.
func stripWholeFence(s string) string {
	if s == "" {
		return s
	}

	content, ok := extractFencedBlock(s, "md", false)
	if !ok {
		content, ok = extractFencedBlock(s, "markdown", false)
	}
	if !ok {
		content, ok = extractFencedBlock(s, "", false)
	}
	if !ok {
		content = strings.TrimSpace(s)
	}

	if _, found := extractFencedBlock(content, "", true); found {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return content
}
