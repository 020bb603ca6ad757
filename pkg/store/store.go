package store

import (
	"io"
	"log/slog"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/event"
	"github.com/aretw0/lattice/pkg/graph"
)

// Event is the capability a store needs from anything that drives it.
type Event interface {
	Type() string
	Next() *graph.FanOut
}

// Watchable is an Event that can report its payloads directly.
type Watchable interface {
	Event
	Watch(fn func(payload any)) func()
}

// Handler computes the next state from the current state and an event payload.
type Handler func(state, payload any, eventType string) any

// Reducer combines the current state with a value passed to SetStateWith.
type Reducer func(state, value any) any

// Store is a mutable cell of state updated through its propagation graph.
type Store struct {
	cell         *graph.Cell
	defaultState any

	name      string
	shortName string
	parent    *domain.CompositeName
	composite *domain.CompositeName

	seq     *graph.Node
	next    *graph.FanOut
	updater *event.Event

	source        *Store
	handlers      map[Event]graph.Handle
	events        []Event
	subscriptions int

	base   *slog.Logger
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// New creates a store holding initial. It never fails; a nil initial state is
// valid but nil can not be written afterwards.
func New(initial any, opts ...Option) *Store {
	s := &Store{
		cell:         graph.NewCell(initial),
		defaultState: initial,
		handlers:     make(map[Event]graph.Handle),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.shortName = s.cell.ID()
	if s.name != "" {
		s.composite = domain.NewCompositeName(s.parent, s.name)
		s.shortName = s.name
	}
	s.base = s.logger
	s.logger = s.logger.With("store", s.DisplayName())

	s.next = graph.NewFanOut()
	s.seq = graph.Seq(
		graph.Single(graph.Filter(func(value any) bool {
			return value != nil && !graph.Same(value, s.cell.Current())
		})),
		graph.Single(graph.Update(s.cell, s.committed)),
		graph.Multi(s.next),
	)
	s.seq.Label = s.DisplayName()

	s.updater = event.New("update " + s.cell.ID())
	s.attach(s.updater, func(_, payload any, _ string) any {
		return payload
	})

	return s
}

func (s *Store) committed(prev, next any) {
	s.logger.Debug("state committed", "prev", prev, "next", next)
	if s.hooks.OnUpdate != nil {
		s.hooks.OnUpdate(&domain.UpdateEvent{Store: s.DisplayName(), Prev: prev, Next: next})
	}
}

// ID returns the identity of the store's cell.
func (s *Store) ID() string {
	return s.cell.ID()
}

// ShortName returns the name given at creation, or the id.
func (s *Store) ShortName() string {
	return s.shortName
}

// CompositeName returns the hierarchical name, nil for unnamed stores.
func (s *Store) CompositeName() *domain.CompositeName {
	return s.composite
}

// DisplayName returns the full composite name, the parent scope name or the
// id, whichever is available first.
func (s *Store) DisplayName() string {
	if s.composite != nil {
		return s.composite.FullName
	}
	if s.parent != nil {
		return s.parent.FullName
	}
	return s.cell.ID()
}

// DefaultState returns the value the store was created with.
func (s *Store) DefaultState() any {
	return s.defaultState
}

// GetState returns the current state.
func (s *Store) GetState() any {
	return s.cell.Current()
}

// Graph returns the canonical pipeline of the store.
func (s *Store) Graph() *graph.Node {
	return s.seq
}

// Source returns the store this one was derived from, nil for root stores.
func (s *Store) Source() *Store {
	return s.source
}

// Subscribers returns the number of active subscriptions.
func (s *Store) Subscribers() int {
	return s.subscriptions
}

// Next returns the fan-out tail that subscribers and derived stores attach to.
func (s *Store) Next() *graph.FanOut {
	return s.next
}

// SetState writes value through the canonical pipeline.
func (s *Store) SetState(value any) {
	s.SetStateWith(value, nil)
}

// SetStateWith writes reduce(GetState(), value) through the canonical
// pipeline. A nil reducer writes value as is.
func (s *Store) SetStateWith(value any, reduce Reducer) {
	next := value
	if reduce != nil {
		next = reduce(s.GetState(), value)
	}
	s.updater.Emit(next)
}

// Reset makes ev restore the state the store was created with.
func (s *Store) Reset(ev Event) *Store {
	return s.On(ev, func(any, any, string) any {
		return s.defaultState
	})
}

// Dispatch returns action unchanged.
func (s *Store) Dispatch(action any) any {
	return action
}

// Thru returns fn(s).
func (s *Store) Thru(fn func(*Store) any) any {
	return fn(s)
}

// String implements fmt.Stringer.
func (s *Store) String() string {
	return "store " + s.DisplayName()
}
