package store

import (
	"fmt"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/graph"
)

// On makes ev drive the store through h. A second call for the same event
// replaces the previous handler. Events are used as map keys and must be
// comparable, which pointer implementations always are.
//
// A nil event or handler panics with an error wrapping
// domain.ErrInvalidArgument.
func (s *Store) On(ev Event, h Handler) *Store {
	if ev == nil {
		panic(fmt.Errorf("store %s: on: nil event: %w", s.DisplayName(), domain.ErrInvalidArgument))
	}
	if h == nil {
		panic(fmt.Errorf("store %s: on %s: nil handler: %w", s.DisplayName(), ev.Type(), domain.ErrInvalidArgument))
	}
	s.attach(ev, h)
	s.events = append(s.events, ev)
	return s
}

func (s *Store) attach(ev Event, h Handler) {
	s.detach(ev)
	s.handlers[ev] = ev.Next().Append(graph.Seq(
		graph.Single(graph.Compute(func(payload any) any {
			return h(s.GetState(), payload, ev.Type())
		})),
		graph.Single(graph.Filter(func(value any) bool {
			return value != nil && !graph.Same(value, s.GetState())
		})),
		s.seq,
	))
}

// Off detaches the handler registered for ev, if any.
func (s *Store) Off(ev Event) {
	if ev == nil || ev == Event(s.updater) {
		return
	}
	s.detach(ev)
}

func (s *Store) detach(ev Event) {
	handle, ok := s.handlers[ev]
	if !ok {
		return
	}
	ev.Next().Remove(handle)
	delete(s.handlers, ev)
	for i, e := range s.events {
		if e == ev {
			s.events = append(s.events[:i:i], s.events[i+1:]...)
			break
		}
	}
}

// Events returns the events currently attached with On or Reset, in
// attachment order.
func (s *Store) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
