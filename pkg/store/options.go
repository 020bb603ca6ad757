package store

import (
	"log/slog"

	"github.com/aretw0/lattice/pkg/domain"
)

// Option configures a Store at creation.
type Option func(*Store)

// WithName sets the display name of the store.
func WithName(name string) Option {
	return func(s *Store) {
		s.name = name
	}
}

// WithParent places the store inside a naming scope.
func WithParent(parent *domain.CompositeName) Option {
	return func(s *Store) {
		s.parent = parent
	}
}

// WithLogger sets the structured logger used for commits and listener failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Store) {
		s.hooks = hooks
	}
}
