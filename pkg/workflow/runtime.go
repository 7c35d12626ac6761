package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/montagne-dev/lampe/pkg/logger"
	"github.com/montagne-dev/lampe/pkg/model"
)

var log = logger.New("workflow:runtime")

// eventQueueCapacity bounds the in-flight event backlog. Real runs are
// bounded by file/agent counts well under this; a full queue blocks
// the producing step at its next suspension point rather than
// growing unbounded.
const eventQueueCapacity = 4096

// StepFunc consumes one event against the shared Context and returns
// zero or more events to route to downstream steps, or a StopEvent to
// terminate the run.
type StepFunc func(ctx context.Context, wctx *Context, ev Event) ([]Event, error)

type step struct {
	name       string
	inputType  reflectType
	numWorkers int
	sem        chan struct{}
	fn         StepFunc
}

// Runtime is a registered set of steps inducing the event-dispatch
// graph described in spec.md §4.C.
type Runtime struct {
	steps map[reflectType][]*step
}

// New creates an empty Runtime.
func New() *Runtime {
	return &Runtime{steps: map[reflectType][]*step{}}
}

// AddStep registers a step whose input type is the dynamic type of
// inputSample. numWorkers caps concurrent invocations of this step;
// <= 0 defaults to 1 (spec.md §4.C default worker cap).
func (r *Runtime) AddStep(name string, inputSample Event, numWorkers int, fn StepFunc) {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	s := &step{name: name, inputType: eventType(inputSample), numWorkers: numWorkers, sem: make(chan struct{}, numWorkers), fn: fn}
	r.steps[s.inputType] = append(r.steps[s.inputType], s)
}

// Run submits start and drives the workflow until a StopEvent is
// produced, a step returns an error (which aborts the run), the
// timeout elapses, or ctx is canceled. timeout <= 0 means no deadline
// beyond ctx's own.
func (r *Runtime) Run(ctx context.Context, start Event, timeout time.Duration) (any, error) {
	runID := uuid.NewString()
	log.Printf("run %s: starting", runID)

	var runCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	wctx := newContext()
	eventsCh := make(chan Event, eventQueueCapacity)
	eventsCh <- start

	var mu sync.Mutex
	var result any
	var resultErr error
	var finished bool
	finish := func(res any, err error) {
		mu.Lock()
		defer mu.Unlock()
		if finished {
			return
		}
		finished = true
		result, resultErr = res, err
		cancel()
	}

	var inFlight sync.WaitGroup
	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case ev, ok := <-eventsCh:
				if !ok {
					return
				}
				if se, isStop := ev.(StopEvent); isStop {
					finish(se.Result, nil)
					continue
				}
				for _, s := range r.steps[eventType(ev)] {
					inFlight.Add(1)
					go r.runStep(runCtx, wctx, s, ev, eventsCh, &inFlight, finish)
				}
			}
		}
	}()

	<-runCtx.Done()
	inFlight.Wait()

	mu.Lock()
	defer mu.Unlock()
	if !finished {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			log.Printf("run %s: timed out", runID)
			return nil, model.ErrWorkflowTimeout
		}
		log.Printf("run %s: canceled", runID)
		return nil, model.ErrWorkflowCanceled
	}
	log.Printf("run %s: finished (err=%v)", runID, resultErr)
	return result, resultErr
}

func (r *Runtime) runStep(ctx context.Context, wctx *Context, s *step, ev Event, eventsCh chan Event, inFlight *sync.WaitGroup, finish func(any, error)) {
	defer inFlight.Done()

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}
	defer func() { <-s.sem }()

	select {
	case <-ctx.Done():
		return
	default:
	}

	outs, err := s.fn(ctx, wctx, ev)
	if err != nil {
		log.Printf("step %s failed: %v", s.name, err)
		finish(nil, fmt.Errorf("step %s: %w", s.name, err))
		return
	}
	for _, out := range outs {
		select {
		case eventsCh <- out:
		case <-ctx.Done():
			return
		}
	}
}
