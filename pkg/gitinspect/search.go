package gitinspect

import (
	"context"
	"fmt"
	"strings"
)

// SearchInFiles greps at a commit using a POSIX extended regex,
// returning a fenced grep block, or the literal "No matches found"
// when empty (spec.md §4.A).
func (i *Inspector) SearchInFiles(ctx context.Context, pattern, dir, commit string, includeLineNumbers bool) (string, error) {
	scope := i.ensureCommitsAvailable(ctx, commit)
	defer scope.close()

	args := []string{"grep", "-E", "-I"}
	if includeLineNumbers {
		args = append(args, "-n")
	}
	args = append(args, pattern, commit)
	if dir != "" {
		args = append(args, "--", dir)
	}

	out, _, err := i.runner.Run(ctx, i.repoPath, args...)
	trimmed := strings.TrimSpace(out)
	if err != nil && trimmed == "" {
		// git grep exits non-zero with empty stdout when there are no
		// matches; that is not an error condition for this operation.
		return "No matches found", nil
	}
	if trimmed == "" {
		return "No matches found", nil
	}
	return fmt.Sprintf("```grep\n%s\n```", SanitizeUTF8([]byte(trimmed))), nil
}

// FindFilesByPattern returns a pathspec-style listing of files in the
// working tree (HEAD) matching pattern, as a fenced shell block, or
// "No files found" when empty (spec.md §4.A).
func (i *Inspector) FindFilesByPattern(ctx context.Context, pattern string) (string, error) {
	out, _, err := i.runner.Run(ctx, i.repoPath, "ls-files", "--", pattern)
	if err != nil {
		return "", fmt.Errorf("find files by pattern %q: %w", pattern, err)
	}
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return "No files found", nil
	}
	return fmt.Sprintf("```shell\n%s\n```", SanitizeUTF8([]byte(trimmed))), nil
}
