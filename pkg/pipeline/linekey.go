package pipeline

import (
	"regexp"
	"strconv"
)

// leadingDigits mirrors reviewagents' line-comment key parsing (spec.md
// §9 Open Questions): a key's leading digit run is its line number,
// non-numeric keys map to line 0.
var leadingDigits = regexp.MustCompile(`^\d+`)

func lineKeyToNumber(key string) int {
	m := leadingDigits.FindString(key)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
