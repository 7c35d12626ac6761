package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersion_EqualIsZero(t *testing.T) {
	assert.Equal(t, 0, compareVersion([3]int{2, 49, 0}, [3]int{2, 49, 0}))
}

func TestCompareVersion_NewerIsPositive(t *testing.T) {
	assert.Greater(t, compareVersion([3]int{2, 50, 0}, [3]int{2, 49, 0}), 0)
	assert.Greater(t, compareVersion([3]int{3, 0, 0}, [3]int{2, 49, 9}), 0)
}

func TestCompareVersion_OlderIsNegative(t *testing.T) {
	assert.Less(t, compareVersion([3]int{2, 48, 0}, [3]int{2, 49, 0}), 0)
}

func TestCompareVersion_PatchLevelBreaksTie(t *testing.T) {
	assert.Less(t, compareVersion([3]int{2, 49, 0}, [3]int{2, 49, 1}), 0)
}

func TestGitVersionPattern_ExtractsSemver(t *testing.T) {
	m := gitVersionPattern.FindStringSubmatch("git version 2.49.0")
	assert.Equal(t, []string{"git version 2.49.0", "2", "49", "0"}, m)
}

func TestGitVersionPattern_HandlesPlatformSuffix(t *testing.T) {
	m := gitVersionPattern.FindStringSubmatch("git version 2.39.3 (Apple Git-146)")
	assert.Equal(t, []string{"git version 2.39.3", "2", "39", "3"}, m)
}
