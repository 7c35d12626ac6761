package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunParallel_AllSucceed(t *testing.T) {
	items := []int{1, 2, 3, 4}
	results := RunParallel(context.Background(), items, 2, func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	})

	var sum int
	for _, r := range results {
		v, ok := r.(int)
		assert.True(t, ok)
		sum += v
	}
	assert.Equal(t, 1+4+9+16, sum)
}

func TestRunParallel_OneFailureYieldsSentinelNotAbort(t *testing.T) {
	items := []int{1, 2, 3}
	boom := errors.New("boom")
	results := RunParallel(context.Background(), items, 2, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})

	require := func(cond bool) {
		if !cond {
			t.Fatal("expected exactly one FailedInnerEvent sentinel")
		}
	}
	var failures int
	var successes int
	for _, r := range results {
		if fe, ok := r.(FailedInnerEvent); ok {
			failures++
			assert.Equal(t, 2, fe.Input)
			assert.ErrorIs(t, fe.Err, boom)
			continue
		}
		successes++
	}
	require(failures == 1)
	assert.Equal(t, 2, successes)
	assert.Len(t, results, 3)
}

func TestRunParallel_MaxWorkersNonPositiveDefaultsToOne(t *testing.T) {
	items := []int{1, 2}
	results := RunParallel(context.Background(), items, 0, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	assert.Len(t, results, 2)
}

func TestRunParallel_EmptyItems(t *testing.T) {
	results := RunParallel(context.Background(), []int{}, 4, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	assert.Empty(t, results)
}
