package store

import (
	"fmt"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/graph"
)

// MapFunc derives a value from the source state and the previous derived
// state. Returning nil keeps the derived store unchanged.
type MapFunc func(state, last any) any

// Map creates a store derived from s through fn. See MapWithSeed.
func (s *Store) Map(fn MapFunc, opts ...Option) *Store {
	return s.MapWithSeed(fn, nil, opts...)
}

// MapWithSeed creates a store whose initial state is fn(s.GetState(), seed)
// and which follows every change of s from then on.
//
// The derived store is named "<short name> → *" within the parent scope of
// s and shares its logger and hooks; opts override those defaults. A nil fn
// panics with an error wrapping domain.ErrInvalidArgument.
func (s *Store) MapWithSeed(fn MapFunc, seed any, opts ...Option) *Store {
	if fn == nil {
		panic(fmt.Errorf("store %s: map: nil function: %w", s.DisplayName(), domain.ErrInvalidArgument))
	}

	defaults := []Option{
		WithName(s.shortName + " → *"),
		WithParent(s.parent),
		WithLogger(s.base),
		WithHooks(s.hooks),
	}
	d := New(fn(s.GetState(), seed), append(defaults, opts...)...)
	d.source = s

	s.next.Append(graph.Seq(
		graph.Single(graph.Compute(func(state any) any {
			return fn(state, d.GetState())
		})),
		graph.Single(graph.Filter(func(value any) bool {
			return value != nil && !graph.Same(value, d.GetState())
		})),
		d.seq,
	))
	return d
}
