// Package registry keeps named stores and events in declaration order.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/lattice/pkg/event"
	"github.com/aretw0/lattice/pkg/store"
)

// ErrDuplicate is returned when a name is registered twice.
var ErrDuplicate = errors.New("duplicate name")

// Registry manages the stores and events of a program.
type Registry struct {
	mu         sync.RWMutex
	stores     map[string]*store.Store
	storeOrder []string
	events     map[string]*event.Event
	eventOrder []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[string]*store.Store),
		events: make(map[string]*event.Event),
	}
}

// RegisterStore adds s under name.
func (r *Registry) RegisterStore(name string, s *store.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[name]; ok {
		return fmt.Errorf("store %q: %w", name, ErrDuplicate)
	}
	r.stores[name] = s
	r.storeOrder = append(r.storeOrder, name)
	return nil
}

// RegisterEvent adds ev under its type name.
func (r *Registry) RegisterEvent(ev *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := ev.Type()
	if _, ok := r.events[name]; ok {
		return fmt.Errorf("event %q: %w", name, ErrDuplicate)
	}
	r.events[name] = ev
	r.eventOrder = append(r.eventOrder, name)
	return nil
}

// Store looks up a store by name.
func (r *Registry) Store(name string) (*store.Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stores[name]
	return s, ok
}

// Event looks up an event by name.
func (r *Registry) Event(name string) (*event.Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[name]
	return ev, ok
}

// Stores returns the store names in registration order.
func (r *Registry) Stores() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.storeOrder...)
}

// Events returns the event names in registration order.
func (r *Registry) Events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.eventOrder...)
}
