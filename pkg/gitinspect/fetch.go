package gitinspect

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

var fetchLog = log

// localCommitsAvailability is the scoped guard from spec.md §4.A /
// §9 "Partial-clone on-demand fetch → scoped guard": entering computes
// which of the requested commits are missing from a sparse/partial
// clone and fetches them; it is advisory only and never swallows a
// downstream error — if a fetch fails, the operation that dereferences
// the commit is left to fail on its own and report that failure.
type localCommitsAvailability struct {
	inspector *Inspector
	fetched   []string
}

// ensureCommitsAvailable enters the LocalCommitsAvailability scope for
// the given commits, fetching any that are missing from a partial
// clone. It is a no-op (and returns immediately) when the clone is not
// sparse/partial.
func (i *Inspector) ensureCommitsAvailable(ctx context.Context, commits ...string) *localCommitsAvailability {
	scope := &localCommitsAvailability{inspector: i}
	if !i.isPartialClone() {
		return scope
	}

	available := i.localCommitSet(ctx)
	for _, c := range commits {
		if c == "" || available[c] {
			continue
		}
		if err := i.fetchCommit(ctx, c); err != nil {
			fetchLog.Printf("failed to fetch missing commit %s: %v", c, err)
			continue
		}
		scope.fetched = append(scope.fetched, c)
	}
	return scope
}

// close logs which commits were fetched during the scope, matching the
// "exit logs the set fetched during the scope" behavior from spec.md §9.
func (s *localCommitsAvailability) close() {
	if len(s.fetched) > 0 {
		fetchLog.Printf("fetched %d commit(s) during scope: %v", len(s.fetched), s.fetched)
	}
}

// isPartialClone reports whether the clone is sparse/partial, per
// spec.md §4.A step 1: core.sparseCheckout=true, or a
// .git/info/sparse-checkout file present.
func (i *Inspector) isPartialClone() bool {
	out, _, err := i.runner.Run(context.Background(), i.repoPath, "config", "--get", "core.sparseCheckout")
	if err == nil && strings.TrimSpace(out) == "true" {
		return true
	}
	if _, statErr := os.Stat(filepath.Join(i.repoPath, ".git", "info", "sparse-checkout")); statErr == nil {
		return true
	}
	return false
}

// localCommitSet enumerates locally-available commits via
// `git fsck --root`, parsing lines beginning "root " and
// "dangling commit " (second/third token = hex SHA), per spec.md
// §4.A step 2.
func (i *Inspector) localCommitSet(ctx context.Context) map[string]bool {
	out, _, err := i.runner.Run(ctx, i.repoPath, "fsck", "--root")
	set := map[string]bool{}
	if err != nil {
		return set
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		switch {
		case len(fields) >= 2 && fields[0] == "root":
			set[fields[1]] = true
		case len(fields) >= 3 && fields[0] == "dangling" && fields[1] == "commit":
			set[fields[2]] = true
		}
	}
	return set
}

// fetchCommit performs the on-demand fetch of spec.md §4.A step 3:
// `git fetch --no-tags --depth=1 --filter=blob:none origin <sha>`.
func (i *Inspector) fetchCommit(ctx context.Context, sha string) error {
	_, _, err := i.runner.Run(ctx, i.repoPath, "fetch", "--no-tags", "--depth=1", "--filter=blob:none", "origin", sha)
	return err
}
