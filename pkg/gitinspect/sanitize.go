package gitinspect

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// bomDecoder strips a leading UTF-8 byte-order mark, left behind by
// some editors and tools in the blobs git hands back verbatim (spec.md
// §4.A "Encoding"); decoding errors are ignored since invalid bytes are
// handled below by the replacement-char pass.
var bomDecoder = unicode.UTF8BOM.NewDecoder()

// SanitizeUTF8 re-encodes raw git output as valid UTF-8, stripping any
// leading BOM and replacing any invalid byte sequence with U+FFFD
// (spec.md §4.A "Encoding"). The result always round-trips as valid
// UTF-8 and contains no surrogate code points (spec.md §8), since
// surrogate-half byte sequences are themselves invalid UTF-8 and fall
// into the replacement path below.
func SanitizeUTF8(raw []byte) string {
	if decoded, err := bomDecoder.Bytes(raw); err == nil {
		raw = decoded
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	out := make([]rune, 0, len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size <= 1 {
			out = append(out, '�')
			raw = raw[1:]
			continue
		}
		out = append(out, r)
		raw = raw[size:]
	}
	return string(out)
}
