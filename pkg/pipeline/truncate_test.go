package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForPrompt_ShortDiffUnchanged(t *testing.T) {
	diff := "diff --git a/a.go b/a.go\n+added a line\n"
	assert.Equal(t, diff, truncateForPrompt(diff, 1000))
}

func TestTruncateForPrompt_AppliesCharCapBeforeTokenCap(t *testing.T) {
	diff := strings.Repeat("x", maxDiffChars+5000)
	out := truncateForPrompt(diff, defaultTruncationTokens)
	assert.LessOrEqual(t, len(out), maxDiffChars)
}

func TestTruncateForPrompt_NonPositiveBudgetUsesDefault(t *testing.T) {
	diff := "small diff"
	assert.Equal(t, diff, truncateForPrompt(diff, 0))
	assert.Equal(t, diff, truncateForPrompt(diff, -1))
}

func TestTruncateForPrompt_LargeDiffIsShortenedByTokenBudget(t *testing.T) {
	diff := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 5000)
	out := truncateForPrompt(diff, 10)
	assert.Less(t, len(out), len(diff))
}
