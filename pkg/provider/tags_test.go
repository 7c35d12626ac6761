package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateOrAddTextBetweenTags_AppendsWhenAbsent(t *testing.T) {
	out := UpdateOrAddTextBetweenTags("Existing body.", "description", "new text")
	assert.Contains(t, out, "Existing body.")
	assert.Contains(t, out, startTag("description"))
	assert.Contains(t, out, "new text")
	assert.Contains(t, out, endTag("description"))
	assert.True(t, strings.Index(out, startTag("description")) > strings.Index(out, "Existing body."))
}

func TestUpdateOrAddTextBetweenTags_ReplacesExistingRegion(t *testing.T) {
	body := "before\n" + startTag("review") + "\nold text\n" + endTag("review") + "\nafter"
	out := UpdateOrAddTextBetweenTags(body, "review", "new text")
	assert.Contains(t, out, "before")
	assert.Contains(t, out, "after")
	assert.Contains(t, out, "new text")
	assert.NotContains(t, out, "old text")
}

func TestUpdateOrAddTextBetweenTags_OnlyFirstOccurrenceTouched(t *testing.T) {
	body := startTag("review") + "\nfirst\n" + endTag("review") + "\n\n" +
		startTag("review") + "\nsecond\n" + endTag("review")
	out := UpdateOrAddTextBetweenTags(body, "review", "updated")
	assert.Contains(t, out, "updated")
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "first\n")
}

func TestUpdateOrAddTextBetweenTags_UnterminatedStartTreatedAsAbsent(t *testing.T) {
	body := "before\n" + startTag("review") + "\ndangling, no end tag"
	out := UpdateOrAddTextBetweenTags(body, "review", "fresh text")
	assert.Contains(t, out, "dangling, no end tag")
	assert.Contains(t, out, "fresh text")
	assert.Equal(t, 2, strings.Count(out, startTag("review")))
}

func TestUpdateOrAddTextBetweenTags_EmptyBody(t *testing.T) {
	out := UpdateOrAddTextBetweenTags("", "description", "text")
	assert.Equal(t, startTag("description")+"\ntext\n"+endTag("description"), out)
}

func TestUpdateOrAddTextBetweenTags_IdempotentOnRepeatedUpdate(t *testing.T) {
	body := ""
	body = UpdateOrAddTextBetweenTags(body, "description", "v1")
	body = UpdateOrAddTextBetweenTags(body, "description", "v2")
	body = UpdateOrAddTextBetweenTags(body, "description", "v3")
	assert.Equal(t, 1, strings.Count(body, startTag("description")))
	assert.Contains(t, body, "v3")
	assert.NotContains(t, body, "v1")
	assert.NotContains(t, body, "v2")
}
