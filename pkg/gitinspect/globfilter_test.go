package gitinspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterPaths_NoPatterns(t *testing.T) {
	paths := []string{"a.go", "b/c.go"}
	assert.Equal(t, paths, FilterPaths(paths, nil, nil, nil))
}

func TestFilterPaths_IncludeOnly(t *testing.T) {
	paths := []string{"pkg/a.go", "pkg/a_test.go", "README.md"}
	got := FilterPaths(paths, []string{"**/*.go"}, nil, nil)
	assert.ElementsMatch(t, []string{"pkg/a.go", "pkg/a_test.go"}, got)
}

func TestFilterPaths_ExcludeDropsMatches(t *testing.T) {
	paths := []string{"pkg/a.go", "pkg/a_test.go"}
	got := FilterPaths(paths, nil, []string{"**/*_test.go"}, nil)
	assert.Equal(t, []string{"pkg/a.go"}, got)
}

func TestFilterPaths_ReincludeRescuesExcluded(t *testing.T) {
	paths := []string{"vendor/lib.go", "vendor/lib_test.go", "pkg/a.go"}
	got := FilterPaths(paths, nil, []string{"vendor/**"}, []string{"vendor/lib.go"})
	assert.ElementsMatch(t, []string{"vendor/lib.go", "pkg/a.go"}, got)
}

// FilterPaths applies include, then exclude, then reinclude in that
// order: a path must survive the include gate before exclude/reinclude
// are even considered.
func TestFilterPaths_IncludeGatesBeforeReinclude(t *testing.T) {
	paths := []string{"vendor/lib.go"}
	got := FilterPaths(paths, []string{"pkg/**"}, []string{"vendor/**"}, []string{"vendor/lib.go"})
	assert.Empty(t, got)
}

func TestFilterPaths_EmptyInput(t *testing.T) {
	got := FilterPaths(nil, []string{"**/*.go"}, nil, nil)
	assert.Empty(t, got)
}
