package reviewagents

import (
	"context"
	"fmt"
	"strings"

	"github.com/montagne-dev/lampe/pkg/gitinspect"
	"github.com/montagne-dev/lampe/pkg/model"
)

// diffFocusedSystemPrompt is the fixed prompt for spec.md §4.E's
// "Diff-Focused Agent": it reviews one file's own diff in isolation,
// using the tool set only to pull in surrounding context.
const diffFocusedSystemPrompt = `You are a meticulous code reviewer examining a single changed file in a pull request.
Review only the diff shown below. Use the available tools to inspect surrounding
file content, search the repository, or find related files when you need more
context before commenting — do not guess at code you have not seen.

Flag real issues: bugs, correctness problems, unclear naming, missing error
handling at a boundary, and anything that would make a careful reviewer pause.
Do not invent problems in code you were not shown.` + responseContractSuffix

// noChangeTemplate substitutes for an empty/new/deleted file's diff
// body, per spec.md §4.E "substitute a placeholder" — added and
// deleted files still get a content-aware placeholder instead of an
// empty diff hunk.
func noChangeTemplate(status gitinspect.ChangeKind, path string) string {
	switch status {
	case gitinspect.ChangeAdded:
		return fmt.Sprintf("%s was newly added. No prior version exists to diff against; review its full content via get_file_content_at_commit.", path)
	case gitinspect.ChangeDeleted:
		return fmt.Sprintf("%s was deleted. Review whether anything still references it.", path)
	default:
		return fmt.Sprintf("%s changed, but no textual diff is available (likely a binary file or a rename with no content change).", path)
	}
}

// DiffFocusedAgent reviews in.TargetFilePath against its own diff,
// falling back to a placeholder when the diff is empty (new, deleted,
// or binary files) (spec.md §4.E).
func DiffFocusedAgent(ctx context.Context, llmFactory LLMFactory, inspector *gitinspect.Inspector, in Input) (model.AgentReviewOutput, error) {
	base := in.PullRequest.BaseCommit
	head := in.PullRequest.HeadCommit

	diff, err := inspector.GetDiffForFiles(ctx, base, head, []string{in.TargetFilePath}, 0)
	if err != nil {
		return model.AgentReviewOutput{}, err
	}

	body := diff
	if strings.TrimSpace(diff) == "" {
		infos, err := inspector.ListChangedFilesAsObjects(ctx, base, head)
		if err != nil {
			return model.AgentReviewOutput{}, err
		}
		status := gitinspect.ChangeModified
		for _, fi := range infos {
			if fi.Path == in.TargetFilePath {
				status = fi.Status
				break
			}
		}
		body = noChangeTemplate(status, in.TargetFilePath)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n\n", in.TargetFilePath)
	fmt.Fprintf(&b, "Diff:\n%s\n\n", body)
	if in.FilesChanged != "" {
		fmt.Fprintf(&b, "Other files changed in this pull request, for context:\n%s\n", in.FilesChanged)
	}

	r := runner{name: "diff-focused", focusAreas: []string{"correctness", "clarity"}, systemPrompt: diffFocusedSystemPrompt}
	return r.run(ctx, llmFactory, inspector, in, b.String())
}
