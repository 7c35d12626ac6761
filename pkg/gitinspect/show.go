package gitinspect

import (
	"context"
	"fmt"
	"strings"
)

const emptyTreeSHA = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// ShowCommit returns a header (sha, author, date, message, files
// changed, ±stats, file list) followed by the diff against the first
// parent, or against the empty tree if ref is a root commit (spec.md
// §4.A).
func (i *Inspector) ShowCommit(ctx context.Context, ref string) (string, error) {
	scope := i.ensureCommitsAvailable(ctx, ref)
	defer scope.close()

	header, _, err := i.runner.Run(ctx, i.repoPath, "show", "--no-patch",
		"--format=%H%n%an <%ae>%n%ad%n%B", ref)
	if err != nil {
		return "", fmt.Errorf("show commit %s: %w", ref, err)
	}

	stat, _, err := i.runner.Run(ctx, i.repoPath, "show", "--stat", "--format=", ref)
	if err != nil {
		return "", fmt.Errorf("show commit stat %s: %w", ref, err)
	}

	parent, _, parentErr := i.runner.Run(ctx, i.repoPath, "rev-parse", ref+"^")
	base := emptyTreeSHA
	if parentErr == nil {
		base = strings.TrimSpace(parent)
	}

	diff, _, err := i.runner.Run(ctx, i.repoPath, "diff", base, ref)
	if err != nil {
		return "", fmt.Errorf("diff for commit %s: %w", ref, err)
	}

	var b strings.Builder
	b.WriteString(SanitizeUTF8([]byte(strings.TrimRight(header, "\n"))))
	b.WriteString("\n\n")
	b.WriteString(SanitizeUTF8([]byte(strings.TrimSpace(stat))))
	b.WriteString("\n\n")
	b.WriteString(SanitizeUTF8([]byte(diff)))
	return b.String(), nil
}
