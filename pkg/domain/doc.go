/*
Package domain contains the types shared by every lattice package that are
not part of the propagation graph itself.

# Key Entities

  - Errors: the sentinel ErrInvalidArgument and ListenerError, the value
    logged when a subscriber panics.
  - LifecycleHooks: optional callbacks fired on commits, notifications and
    listener failures, used by observability adapters.
  - CompositeName: the hierarchical display name of a store.
*/
package domain
