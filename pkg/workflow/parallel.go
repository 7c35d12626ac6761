package workflow

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// FailedInnerEvent is the sentinel substituted for one inner
// RunParallel invocation's result when that invocation fails,
// so one failure does not abort its siblings (spec.md §4.C "Failure
// semantics"). The outer pipeline filters sentinels before
// aggregation.
type FailedInnerEvent struct {
	Input any
	Err   error
}

// RunParallel runs fn over items with at most maxWorkers concurrent
// invocations, using sourcegraph/conc's bounded result pool. Callers
// pass PARALLEL_WORKFLOW_MAX_WORKERS (default 32, applied by the caller
// — spec.md §4.C/§6); a non-positive maxWorkers runs one invocation at
// a time. A failing
// invocation yields a FailedInnerEvent in its result slot rather than
// aborting the batch; callers filter those out before aggregating
// (spec.md §4.F step 5).
func RunParallel[In, Out any](ctx context.Context, items []In, maxWorkers int, fn func(ctx context.Context, item In) (Out, error)) []any {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	p := pool.NewWithResults[any]().WithMaxGoroutines(maxWorkers)
	for _, item := range items {
		item := item
		p.Go(func() any {
			out, err := fn(ctx, item)
			if err != nil {
				return FailedInnerEvent{Input: item, Err: err}
			}
			return out
		})
	}
	return p.Wait()
}
