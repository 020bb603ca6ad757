package store

import (
	"fmt"

	"github.com/aretw0/lattice/pkg/domain"
)

// Observer is the minimal observer protocol understood by Observable.
type Observer interface {
	Next(value any)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(value any)

// Next calls f(value).
func (f ObserverFunc) Next(value any) {
	f(value)
}

// Observable exposes a store to code speaking the observer protocol.
type Observable struct {
	store *Store
}

// Observable returns an observable view of s.
func (s *Store) Observable() *Observable {
	return &Observable{store: s}
}

// Subscribe calls o.Next with the current state and then with every change.
func (o *Observable) Subscribe(obs Observer) (Unsubscribe, error) {
	if obs == nil {
		return nil, fmt.Errorf("store %s: observe: nil observer: %w", o.store.DisplayName(), domain.ErrInvalidArgument)
	}
	return o.store.Subscribe(obs.Next)
}

// Observable returns o itself.
func (o *Observable) Observable() *Observable {
	return o
}
