package gitinspect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchInFiles_MatchesAreFenced(t *testing.T) {
	runner := newFakeRunner().
		on("config --get core.sparseCheckout", "false").
		on("grep -E -I foo abc123", "abc123:main.go:some foo here\n")

	insp := NewWithRunner("/repo", runner)
	out, err := insp.SearchInFiles(context.Background(), "foo", "", "abc123", false)
	require.NoError(t, err)
	assert.Contains(t, out, "```")
	assert.Contains(t, out, "some foo here")
}

func TestSearchInFiles_NoMatchesIsNotAnError(t *testing.T) {
	runner := newFakeRunner().
		on("config --get core.sparseCheckout", "false").
		onErr("grep -E -I nope abc123", errTestSentinel("exit status 1"))

	insp := NewWithRunner("/repo", runner)
	out, err := insp.SearchInFiles(context.Background(), "nope", "", "abc123", false)
	require.NoError(t, err)
	assert.Equal(t, "No matches found", out)
}

func TestFindFilesByPattern_NoFilesFound(t *testing.T) {
	runner := newFakeRunner().on("ls-files -- **/*.missing", "")
	insp := NewWithRunner("/repo", runner)
	out, err := insp.FindFilesByPattern(context.Background(), "**/*.missing")
	require.NoError(t, err)
	assert.Equal(t, "No files found", out)
}

func TestFindFilesByPattern_ListsMatches(t *testing.T) {
	runner := newFakeRunner().on("ls-files -- **/*.go", "a.go\nb.go\n")
	insp := NewWithRunner("/repo", runner)
	out, err := insp.FindFilesByPattern(context.Background(), "**/*.go")
	require.NoError(t, err)
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "b.go")
}
