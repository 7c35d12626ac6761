package tools

import (
	"context"
	"fmt"

	"github.com/montagne-dev/lampe/pkg/gitinspect"
)

// NewRepoRegistry builds the exact tool set spec.md §4.B exposes to
// review/description agents: get_diff_for_files,
// get_file_content_at_commit, find_files_by_pattern, search_in_files.
// base/head are captured by the get_diff_for_files closure when the
// registry is built, never supplied by the model; the other tools read
// their commit from the model's arguments.
func NewRepoRegistry(inspector *gitinspect.Inspector, base, head string) *Registry {
	return NewRegistry(
		getDiffForFilesTool(inspector, base, head),
		getFileContentAtCommitTool(inspector),
		findFilesByPatternTool(inspector),
		searchInFilesTool(inspector),
	)
}

func getDiffForFilesTool(inspector *gitinspect.Inspector, base, head string) Tool {
	return Tool{
		Name:        "get_diff_for_files",
		Description: "Return the unified diff for a specific set of files between the pull request's base and head commits.",
		Params: []Param{
			{Name: "paths", Type: "array", Description: "File paths to diff.", Required: true},
		},
		invoke: func(ctx context.Context, args map[string]any) (Result, error) {
			paths, err := asStringSlice(args["paths"])
			if err != nil {
				return Result{}, err
			}
			out, err := inspector.GetDiffForFiles(ctx, base, head, paths, 0)
			if err != nil {
				return Result{}, err
			}
			return Result{Content: out}, nil
		},
	}
}

func getFileContentAtCommitTool(inspector *gitinspect.Inspector) Tool {
	return Tool{
		Name:        "get_file_content_at_commit",
		Description: "Return a file's text content at a given commit, optionally restricted to a line range, optionally with line numbers.",
		Params: []Param{
			{Name: "commit", Type: "string", Description: "Commit SHA to read the file at.", Required: true},
			{Name: "path", Type: "string", Description: "File path.", Required: true},
			{Name: "line_start", Type: "integer", Description: "0-based inclusive start line, or omit for file start."},
			{Name: "line_end", Type: "integer", Description: "0-based inclusive end line, or omit for file end."},
			{Name: "include_line_numbers", Type: "boolean", Description: "Prefix each line with its line number."},
		},
		invoke: func(ctx context.Context, args map[string]any) (Result, error) {
			commit, _ := args["commit"].(string)
			path, _ := args["path"].(string)
			lineStart := asIntOrDefault(args["line_start"], -1)
			lineEnd := asIntOrDefault(args["line_end"], -1)
			includeLines, _ := args["include_line_numbers"].(bool)
			out, err := inspector.GetFileContentAtCommit(ctx, commit, path, lineStart, lineEnd, includeLines)
			if err != nil {
				return Result{}, err
			}
			return Result{Content: out}, nil
		},
	}
}

func findFilesByPatternTool(inspector *gitinspect.Inspector) Tool {
	return Tool{
		Name:        "find_files_by_pattern",
		Description: "Find files in the repository matching a pathspec-style pattern.",
		Params: []Param{
			{Name: "pattern", Type: "string", Description: "Pathspec pattern, e.g. '**/*.go'.", Required: true},
		},
		invoke: func(ctx context.Context, args map[string]any) (Result, error) {
			pattern, _ := args["pattern"].(string)
			out, err := inspector.FindFilesByPattern(ctx, pattern)
			if err != nil {
				return Result{}, err
			}
			return Result{Content: out}, nil
		},
	}
}

func searchInFilesTool(inspector *gitinspect.Inspector) Tool {
	return Tool{
		Name:        "search_in_files",
		Description: "Grep the repository at a commit for a POSIX extended regular expression.",
		Params: []Param{
			{Name: "pattern", Type: "string", Description: "POSIX extended regular expression.", Required: true},
			{Name: "dir", Type: "string", Description: "Directory to restrict the search to, or empty for the whole tree."},
			{Name: "commit", Type: "string", Description: "Commit to search at.", Required: true},
			{Name: "include_line_numbers", Type: "boolean", Description: "Prefix each match with its line number."},
		},
		invoke: func(ctx context.Context, args map[string]any) (Result, error) {
			pattern, _ := args["pattern"].(string)
			dir, _ := args["dir"].(string)
			commit, _ := args["commit"].(string)
			includeLines, _ := args["include_line_numbers"].(bool)
			out, err := inspector.SearchInFiles(ctx, pattern, dir, commit, includeLines)
			if err != nil {
				return Result{}, err
			}
			return Result{Content: out}, nil
		},
	}
}

func asStringSlice(v any) ([]string, error) {
	switch vv := v.(type) {
	case []string:
		return vv, nil
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected array of strings, got element of type %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected array of strings, got %T", v)
	}
}

func asIntOrDefault(v any, def int) int {
	switch vv := v.(type) {
	case int:
		return vv
	case int64:
		return int(vv)
	case float64:
		return int(vv)
	default:
		return def
	}
}
