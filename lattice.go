package lattice

import (
	"fmt"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/dsl"
	"github.com/aretw0/lattice/pkg/event"
	"github.com/aretw0/lattice/pkg/store"
)

type (
	// Store is a reactive cell of state.
	Store = store.Store
	// Event is a named trigger that pushes payloads into stores.
	Event = event.Event
	// Option configures a store at creation.
	Option = store.Option
	// Handler computes the next state of a store from an event payload.
	Handler = store.Handler
	// MapFunc computes the state of a derived store.
	MapFunc = store.MapFunc
	// Listener receives the states of a store.
	Listener = store.Listener
	// Unsubscribe cancels a subscription. It is safe to call more than once.
	Unsubscribe = store.Unsubscribe
	// LifecycleHooks observe commits, notifications and listener failures.
	LifecycleHooks = domain.LifecycleHooks
	// Program is a built scenario.
	Program = dsl.Program
)

// Re-exported store options.
var (
	WithName   = store.WithName
	WithParent = store.WithParent
	WithLogger = store.WithLogger
	WithHooks  = store.WithHooks
)

// CreateStore creates a store holding initial.
func CreateStore(initial any, opts ...Option) *Store {
	return store.New(initial, opts...)
}

// CreateEvent creates an event named name.
func CreateEvent(name string) *Event {
	return event.New(name)
}

// Scope returns a naming scope for stores created with WithParent.
// Nested scopes are joined with "/".
func Scope(names ...string) *domain.CompositeName {
	var scope *domain.CompositeName
	for _, n := range names {
		scope = domain.NewCompositeName(scope, n)
	}
	return scope
}

// Load parses and builds the scenario file at path.
func Load(path string, opts ...dsl.Option) (*Program, error) {
	doc, err := dsl.ParseFile(path)
	if err != nil {
		return nil, err
	}
	p, err := dsl.Build(doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	return p, nil
}
