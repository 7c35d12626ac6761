package workflow

import (
	"context"
	"fmt"
)

// CollectEvents buffers values arriving on incoming and releases the
// full set once exactly n have been gathered — the unordered-multiset
// barrier described in spec.md §4.C ("collect_events releases a set,
// not a sequence"). It blocks until n events arrive, incoming closes
// early, or ctx is done (surfacing ctx.Err(), e.g. a timeout or
// cancellation per spec.md §5).
func CollectEvents[T any](ctx context.Context, n int, incoming <-chan T) ([]T, error) {
	out := make([]T, 0, n)
	for len(out) < n {
		select {
		case v, ok := <-incoming:
			if !ok {
				return out, fmt.Errorf("collect_events: source closed with %d/%d events collected", len(out), n)
			}
			out = append(out, v)
		case <-ctx.Done():
			return out, ctx.Err()
		}
	}
	return out, nil
}
