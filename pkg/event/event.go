// Package event provides the event primitive that drives store transitions.
//
// An Event is a named entry point into a propagation graph: Emit pushes a
// payload to every pipeline appended to its fan-out list.
package event

import "github.com/aretw0/lattice/pkg/graph"

// Event is a named trigger with its own fan-out list.
// It is not safe for concurrent use.
type Event struct {
	name string
	next *graph.FanOut
	root *graph.Node
}

// New creates an event named name.
func New(name string) *Event {
	next := graph.NewFanOut()
	root := graph.Multi(next)
	root.Label = name
	return &Event{
		name: name,
		next: next,
		root: root,
	}
}

// Type returns the event name.
func (e *Event) Type() string {
	return e.name
}

// Next returns the fan-out list descendants are appended to.
func (e *Event) Next() *graph.FanOut {
	return e.next
}

// Graph returns the root node of the event.
func (e *Event) Graph() *graph.Node {
	return e.root
}

// Emit pushes payload through every attached pipeline and returns it.
func (e *Event) Emit(payload any) any {
	graph.Launch(e.root, payload)
	return payload
}

// Watch calls fn with every emitted payload until the returned function is
// called.
func (e *Event) Watch(fn func(payload any)) func() {
	if fn == nil {
		return func() {}
	}
	h := e.next.Append(graph.Single(graph.Run(fn)))
	return func() {
		e.next.Remove(h)
	}
}

// String implements fmt.Stringer.
func (e *Event) String() string {
	return "event " + e.name
}
