package reviewagents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/montagne-dev/lampe/pkg/gitinspect"
)

func TestNoChangeTemplate_Added(t *testing.T) {
	out := noChangeTemplate(gitinspect.ChangeAdded, "new.go")
	assert.Contains(t, out, "new.go")
	assert.Contains(t, out, "newly added")
}

func TestNoChangeTemplate_Deleted(t *testing.T) {
	out := noChangeTemplate(gitinspect.ChangeDeleted, "old.go")
	assert.Contains(t, out, "old.go")
	assert.Contains(t, out, "deleted")
}

func TestNoChangeTemplate_ModifiedOrBinaryDefault(t *testing.T) {
	out := noChangeTemplate(gitinspect.ChangeModified, "image.png")
	assert.Contains(t, out, "image.png")
	assert.Contains(t, out, "no textual diff")
}

func TestNoChangeTemplate_DistinctMessagesPerStatus(t *testing.T) {
	added := noChangeTemplate(gitinspect.ChangeAdded, "f.go")
	deleted := noChangeTemplate(gitinspect.ChangeDeleted, "f.go")
	modified := noChangeTemplate(gitinspect.ChangeModified, "f.go")
	assert.NotEqual(t, added, deleted)
	assert.NotEqual(t, added, modified)
	assert.NotEqual(t, deleted, modified)
}
