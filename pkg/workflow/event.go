// Package workflow implements the deterministic event/handler runtime
// of spec.md §4.C: steps consume one typed event and emit one or more
// typed events, with cooperative concurrency, fan-out/fan-in
// collection, cancellation, and timeouts.
package workflow

import "reflect"

// Event is the tagged-union unit the runtime dispatches. Concrete
// event types are plain Go structs; their dynamic type is the "tag".
type Event interface{}

// StartEvent marks a workflow's entry point.
type StartEvent struct {
	Payload any
}

// StopEvent marks a workflow's termination; Result is the run's
// output.
type StopEvent struct {
	Result any
}

// eventType returns the reflect.Type used as the dispatch key for an
// Event value.
func eventType(e Event) reflect.Type {
	return reflect.TypeOf(e)
}

type reflectType = reflect.Type
