package store

import (
	"fmt"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/graph"
)

// Listener receives the state of a store after every change.
type Listener func(state any)

// WatchHandler receives the state of a store together with an event payload.
type WatchHandler func(state, payload any, eventType string)

// Unsubscribe detaches a subscription. Calling it more than once is safe.
type Unsubscribe func()

// Unsubscribe calls u. It lets the value satisfy subscription interfaces
// expecting a method.
func (u Unsubscribe) Unsubscribe() {
	if u != nil {
		u()
	}
}

type subscription struct {
	store    *Store
	listener Listener
	handle   graph.Handle
	lastCall any
	active   bool
}

func (sub *subscription) receive(state any) {
	if !sub.active || graph.Same(state, sub.lastCall) {
		return
	}
	sub.lastCall = state
	sub.store.deliver(sub.listener, state)
}

func (sub *subscription) cancel() {
	if !sub.active {
		return
	}
	sub.active = false
	sub.store.next.Remove(sub.handle)
	sub.store.subscriptions--
}

// Subscribe registers l and calls it once, right away, with the current
// state. Afterwards l runs whenever the state changes.
//
// A listener panicking during a later notification is recovered, logged and
// reported through the OnListenerError hook. A panic during the first call
// detaches the subscription and is re-raised.
func (s *Store) Subscribe(l Listener) (Unsubscribe, error) {
	if l == nil {
		return nil, fmt.Errorf("store %s: subscribe: nil listener: %w", s.DisplayName(), domain.ErrInvalidArgument)
	}

	sub := &subscription{
		store:    s,
		listener: l,
		lastCall: s.GetState(),
		active:   true,
	}
	sub.handle = s.next.Append(graph.Single(graph.Run(sub.receive)))
	s.subscriptions++

	func() {
		defer func() {
			if r := recover(); r != nil {
				sub.cancel()
				panic(r)
			}
		}()
		s.notified(sub.lastCall)
		l(sub.lastCall)
	}()

	return sub.cancel, nil
}

// Watch subscribes to target. When target is an event, h is called with the
// current state and every payload of the event. When target is a Listener or
// a func(any), Watch is Subscribe and h is ignored.
func (s *Store) Watch(target any, h WatchHandler) (Unsubscribe, error) {
	switch t := target.(type) {
	case Watchable:
		if h == nil {
			return nil, fmt.Errorf("store %s: watch %s: nil handler: %w", s.DisplayName(), t.Type(), domain.ErrInvalidArgument)
		}
		stop := t.Watch(func(payload any) {
			h(s.GetState(), payload, t.Type())
		})
		return Unsubscribe(stop), nil
	case Listener:
		return s.Subscribe(t)
	case func(any):
		return s.Subscribe(t)
	default:
		return nil, fmt.Errorf("store %s: watch: unsupported target %T: %w", s.DisplayName(), target, domain.ErrInvalidArgument)
	}
}

func (s *Store) deliver(l Listener, state any) {
	defer func() {
		if r := recover(); r != nil {
			err := &domain.ListenerError{Store: s.DisplayName(), Value: r}
			s.logger.Error("listener failed", "err", err)
			if s.hooks.OnListenerError != nil {
				s.hooks.OnListenerError(&domain.ListenerErrorEvent{Store: s.DisplayName(), Err: err})
			}
		}
	}()
	s.notified(state)
	l(state)
}

func (s *Store) notified(state any) {
	if s.hooks.OnNotify != nil {
		s.hooks.OnNotify(&domain.NotifyEvent{Store: s.DisplayName(), State: state})
	}
}
