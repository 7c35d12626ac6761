package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSuccessMessage_CarriesCheckmarkAndText(t *testing.T) {
	out := FormatSuccessMessage("done")
	assert.True(t, strings.Contains(out, "✅"))
	assert.True(t, strings.Contains(out, "done"))
}

func TestFormatErrorMessage_CarriesCrossAndText(t *testing.T) {
	out := FormatErrorMessage("broke")
	assert.True(t, strings.Contains(out, "❌"))
	assert.True(t, strings.Contains(out, "broke"))
}

func TestFormatWarningMessage_CarriesWarningGlyph(t *testing.T) {
	out := FormatWarningMessage("careful")
	assert.True(t, strings.Contains(out, "⚠"))
}

func TestFormatInfoMessage_CarriesInfoGlyph(t *testing.T) {
	out := FormatInfoMessage("fyi")
	assert.True(t, strings.Contains(out, "ℹ"))
}
