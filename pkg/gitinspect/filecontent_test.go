package gitinspect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileContentAtCommit_FullFile(t *testing.T) {
	runner := newFakeRunner().
		on("config --get core.sparseCheckout", "false").
		on("show abc123:main.go", "line0\nline1\nline2\n")

	insp := NewWithRunner("/repo", runner)
	out, err := insp.GetFileContentAtCommit(context.Background(), "abc123", "main.go", -1, -1, false)
	require.NoError(t, err)
	assert.Equal(t, "line0\nline1\nline2", out)
}

func TestGetFileContentAtCommit_LineRangeIsInclusiveBothEnds(t *testing.T) {
	runner := newFakeRunner().
		on("config --get core.sparseCheckout", "false").
		on("show abc123:main.go", "line0\nline1\nline2\nline3\n")

	insp := NewWithRunner("/repo", runner)
	out, err := insp.GetFileContentAtCommit(context.Background(), "abc123", "main.go", 1, 2, false)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2", out)
}

func TestGetFileContentAtCommit_IncludeLineNumbers(t *testing.T) {
	runner := newFakeRunner().
		on("config --get core.sparseCheckout", "false").
		on("show abc123:main.go", "a\nb\n")

	insp := NewWithRunner("/repo", runner)
	out, err := insp.GetFileContentAtCommit(context.Background(), "abc123", "main.go", -1, -1, true)
	require.NoError(t, err)
	assert.Equal(t, "0| a\n1| b", out)
}

func TestGetFileContentAtCommit_OutOfRangeStartReturnsEmpty(t *testing.T) {
	runner := newFakeRunner().
		on("config --get core.sparseCheckout", "false").
		on("show abc123:main.go", "a\nb\n")

	insp := NewWithRunner("/repo", runner)
	out, err := insp.GetFileContentAtCommit(context.Background(), "abc123", "main.go", 10, -1, false)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestGetFileContentAtCommit_NotFoundWrapsSentinel(t *testing.T) {
	runner := newFakeRunner().
		on("config --get core.sparseCheckout", "false").
		onErr("show abc123:missing.go", errTestSentinel("no such path"))

	insp := NewWithRunner("/repo", runner)
	_, err := insp.GetFileContentAtCommit(context.Background(), "abc123", "missing.go", -1, -1, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, fileNotFound)
}
