package gitinspect

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUTF8_ValidInputUnchanged(t *testing.T) {
	in := "hello, 世界"
	assert.Equal(t, in, SanitizeUTF8([]byte(in)))
}

func TestSanitizeUTF8_StripsLeadingBOM(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	in := append(bom, []byte("package main")...)
	assert.Equal(t, "package main", SanitizeUTF8(in))
}

func TestSanitizeUTF8_ReplacesInvalidBytes(t *testing.T) {
	in := []byte{'a', 0xFF, 'b'}
	out := SanitizeUTF8(in)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "a�b", out)
}

func TestSanitizeUTF8_NoSurrogatesSurvive(t *testing.T) {
	// A lone surrogate-half byte sequence is itself invalid UTF-8 and
	// must fall into the replacement path, not pass through verbatim.
	in := []byte{0xED, 0xA0, 0x80}
	out := SanitizeUTF8(in)
	assert.True(t, utf8.ValidString(out))
	for _, r := range out {
		assert.False(t, r >= 0xD800 && r <= 0xDFFF)
	}
}

func TestSanitizeUTF8_EmptyInput(t *testing.T) {
	assert.Equal(t, "", SanitizeUTF8(nil))
}
