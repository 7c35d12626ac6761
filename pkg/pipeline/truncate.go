package pipeline

import (
	"github.com/pkoukk/tiktoken-go"
)

// maxDiffChars is the coarse pre-truncation ceiling applied before the
// token-accurate pass, so pathologically large diffs never reach the
// tokenizer at all (spec.md §4.G).
const maxDiffChars = 200000

// defaultTruncationTokens is the token budget a diff is truncated to
// before being embedded in the description prompt (spec.md §4.G,
// configurable via truncation_tokens).
const defaultTruncationTokens = 100000

// truncateForPrompt applies spec.md §4.G's two-stage truncation: a
// cheap character cap, then an exact cl100k_base BPE token cap with
// special tokens permitted through the encoder rather than rejected
// ("permit-all-specials" mode, since diffs routinely contain substrings
// that look like special tokens, e.g. "<|endoftext|>" in a code
// comment, and truncation must not fail because of that).
func truncateForPrompt(diff string, truncationTokens int) string {
	if truncationTokens <= 0 {
		truncationTokens = defaultTruncationTokens
	}
	if len(diff) > maxDiffChars {
		diff = diff[:maxDiffChars]
	}

	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		// No tokenizer available: the character cap above is the only
		// bound we can offer (spec.md §4.G degrades gracefully here).
		return diff
	}
	tokens := enc.Encode(diff, []string{"all"}, nil)
	if len(tokens) <= truncationTokens {
		return diff
	}
	return enc.Decode(tokens[:truncationTokens])
}
