package gitinspect

import (
	"context"
	"fmt"
	"strings"
)

// GetFileContentAtCommit returns the blob at commit:path as text. When
// lineStart/lineEnd are both non-negative, both ends are inclusive and
// 0-based after splitting on lines; when includeLineNumbers is set,
// each output line is prefixed with a right-aligned line number and
// "| " (spec.md §4.A).
func (i *Inspector) GetFileContentAtCommit(ctx context.Context, commit, path string, lineStart, lineEnd int, includeLineNumbers bool) (string, error) {
	scope := i.ensureCommitsAvailable(ctx, commit)
	defer scope.close()

	out, _, err := i.runner.Run(ctx, i.repoPath, "show", commit+":"+path)
	if err != nil {
		return "", fmt.Errorf("%w: %s at %s: %v", fileNotFound, path, commit, err)
	}
	text := SanitizeUTF8([]byte(out))

	lines := strings.Split(text, "\n")
	// git show on a file with a trailing newline yields a final empty
	// element from Split; drop it so line counts match splitlines().
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	start, end := 0, len(lines)-1
	if lineStart >= 0 {
		start = lineStart
	}
	if lineEnd >= 0 && lineEnd < end {
		end = lineEnd
	}
	if start > end || start >= len(lines) {
		return "", nil
	}
	selected := lines[start : end+1]

	if !includeLineNumbers {
		return strings.Join(selected, "\n"), nil
	}

	width := len(fmt.Sprintf("%d", start+len(selected)))
	var b strings.Builder
	for idx, l := range selected {
		fmt.Fprintf(&b, "%*d| %s\n", width, start+idx, l)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
