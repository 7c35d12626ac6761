package gitinspect

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ListChangedFiles returns one line per changed path in the form
// "[A|M|D] path | +adds -dels | sizeKB", sorted lexicographically by
// path. Deletions and binary files report 0/0; sizes are sampled at
// head (spec.md §4.A).
func (i *Inspector) ListChangedFiles(ctx context.Context, base, head string) (string, error) {
	infos, err := i.ListChangedFilesAsObjects(ctx, base, head)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, fi := range infos {
		fmt.Fprintf(&b, "[%s] %s | +%d -%d | %.1fKB\n", fi.Status, fi.Path, fi.Additions, fi.Deletions, fi.SizeKB)
	}
	return b.String(), nil
}

// ListChangedFilesAsObjects is the structured form of ListChangedFiles.
func (i *Inspector) ListChangedFilesAsObjects(ctx context.Context, base, head string) ([]FileDiffInfo, error) {
	scope := i.ensureCommitsAvailable(ctx, base, head)
	defer scope.close()

	nameStatusOut, _, err := i.runner.Run(ctx, i.repoPath, "diff", "--name-status", base+".."+head)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDiffFailed(base, head), err)
	}
	numstatOut, _, err := i.runner.Run(ctx, i.repoPath, "diff", "--numstat", base+".."+head)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDiffFailed(base, head), err)
	}

	statuses := map[string]ChangeKind{}
	for _, line := range strings.Split(nameStatusOut, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		statuses[fields[len(fields)-1]] = ChangeKind(fields[0][:1])
	}

	stats := map[string][2]int{}
	for _, line := range strings.Split(numstatOut, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		path := strings.Join(fields[2:], " ")
		adds, _ := strconv.Atoi(fields[0]) // "-" for binary files parses to 0
		dels, _ := strconv.Atoi(fields[1])
		stats[path] = [2]int{adds, dels}
	}

	paths := make([]string, 0, len(statuses))
	for p := range statuses {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	infos := make([]FileDiffInfo, 0, len(paths))
	for _, p := range paths {
		fi := FileDiffInfo{Path: p, Status: statuses[p]}
		if fi.Status != ChangeDeleted {
			s := stats[p]
			fi.Additions, fi.Deletions = s[0], s[1]
			fi.SizeKB = i.blobSizeKB(ctx, head, p)
		}
		infos = append(infos, fi)
	}
	return infos, nil
}

// blobSizeKB returns a file's size at commit in kilobytes, or 0 if it
// cannot be determined (e.g. deleted, or a git failure — reported to
// the caller as a 0-size sample rather than an error, matching the
// "Deletions and binary files report 0/0" contract).
func (i *Inspector) blobSizeKB(ctx context.Context, commit, path string) float64 {
	out, _, err := i.runner.Run(ctx, i.repoPath, "cat-file", "-s", commit+":"+path)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return 0
	}
	return float64(n) / 1024.0
}

const defaultBatchSize = 50

// GetDiffBetweenCommits returns the concatenated unified diff for the
// files changed between base and head, filtered by include/exclude/
// reinclude globs (spec.md §4.A precedence, §8 property #2), diffed in
// batches of at most batchSize files per git invocation.
func (i *Inspector) GetDiffBetweenCommits(ctx context.Context, base, head string, exclude, include, reinclude []string, batchSize int) (string, error) {
	infos, err := i.ListChangedFilesAsObjects(ctx, base, head)
	if err != nil {
		return "", err
	}
	paths := make([]string, len(infos))
	for idx, fi := range infos {
		paths[idx] = fi.Path
	}
	filtered := FilterPaths(paths, include, exclude, reinclude)
	return i.GetDiffForFiles(ctx, base, head, filtered, batchSize)
}

// GetDiffForFiles returns the per-file diff restricted to paths;
// unknown paths are skipped silently (spec.md §4.A, §7). Files are
// diffed in batches of at most batchSize per invocation, concatenated
// in batch order.
func (i *Inspector) GetDiffForFiles(ctx context.Context, base, head string, paths []string, batchSize int) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	scope := i.ensureCommitsAvailable(ctx, base, head)
	defer scope.close()

	var b strings.Builder
	for start := 0; start < len(paths); start += batchSize {
		end := start + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		batch := paths[start:end]
		args := append([]string{"diff", base + ".." + head, "--"}, batch...)
		out, _, err := i.runner.Run(ctx, i.repoPath, args...)
		if err != nil {
			// A batch diff failure for a possibly-unknown path is
			// rescued (spec.md §7 "callers either rescue... or
			// surface"); the unified-diff batch call either returns
			// diffs for the paths that exist or an empty string.
			continue
		}
		b.WriteString(SanitizeUTF8([]byte(out)))
	}
	return b.String(), nil
}

func errDiffFailed(base, head string) error {
	return fmt.Errorf("%w: %s..%s", diffNotFound, base, head)
}
