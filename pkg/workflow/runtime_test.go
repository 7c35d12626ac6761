package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montagne-dev/lampe/pkg/model"
)

type greetEvent struct{ name string }
type shoutEvent struct{ text string }

func TestRuntime_SingleStepCompletes(t *testing.T) {
	r := New()
	r.AddStep("greet", greetEvent{}, 1, func(ctx context.Context, wctx *Context, ev Event) ([]Event, error) {
		g := ev.(greetEvent)
		return []Event{StopEvent{Result: "hello " + g.name}}, nil
	})

	result, err := r.Run(context.Background(), greetEvent{name: "ada"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello ada", result)
}

func TestRuntime_ChainsStepsByEventType(t *testing.T) {
	r := New()
	r.AddStep("greet", greetEvent{}, 1, func(ctx context.Context, wctx *Context, ev Event) ([]Event, error) {
		g := ev.(greetEvent)
		return []Event{shoutEvent{text: "HELLO " + g.name}}, nil
	})
	r.AddStep("shout", shoutEvent{}, 1, func(ctx context.Context, wctx *Context, ev Event) ([]Event, error) {
		s := ev.(shoutEvent)
		return []Event{StopEvent{Result: s.text}}, nil
	})

	result, err := r.Run(context.Background(), greetEvent{name: "ada"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "HELLO ada", result)
}

func TestRuntime_StepErrorAbortsRun(t *testing.T) {
	r := New()
	boom := errors.New("boom")
	r.AddStep("greet", greetEvent{}, 1, func(ctx context.Context, wctx *Context, ev Event) ([]Event, error) {
		return nil, boom
	})

	_, err := r.Run(context.Background(), greetEvent{name: "ada"}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRuntime_TimeoutReturnsErrWorkflowTimeout(t *testing.T) {
	r := New()
	r.AddStep("greet", greetEvent{}, 1, func(ctx context.Context, wctx *Context, ev Event) ([]Event, error) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-ctx.Done():
		}
		return []Event{StopEvent{Result: "too slow"}}, nil
	})

	_, err := r.Run(context.Background(), greetEvent{name: "ada"}, 10*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrWorkflowTimeout)
}

func TestRuntime_CancellationReturnsErrWorkflowCanceled(t *testing.T) {
	r := New()
	r.AddStep("greet", greetEvent{}, 1, func(ctx context.Context, wctx *Context, ev Event) ([]Event, error) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-ctx.Done():
		}
		return []Event{StopEvent{Result: "too slow"}}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.Run(ctx, greetEvent{name: "ada"}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrWorkflowCanceled)
}

func TestRuntime_ContextIsSharedAcrossSteps(t *testing.T) {
	r := New()
	r.AddStep("greet", greetEvent{}, 1, func(ctx context.Context, wctx *Context, ev Event) ([]Event, error) {
		wctx.Set("seen", ev.(greetEvent).name)
		return []Event{shoutEvent{text: "done"}}, nil
	})
	r.AddStep("shout", shoutEvent{}, 1, func(ctx context.Context, wctx *Context, ev Event) ([]Event, error) {
		v, ok := wctx.Get("seen")
		require.True(t, ok)
		return []Event{StopEvent{Result: v}}, nil
	})

	result, err := r.Run(context.Background(), greetEvent{name: "grace"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "grace", result)
}
