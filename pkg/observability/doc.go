/*
Package observability turns store lifecycle hooks into metrics and logs.

Metrics registers Prometheus counters and exposes them as
domain.LifecycleHooks; LoggingHooks does the same for a slog.Logger. Both
can be combined with domain.MergeHooks and passed to store.WithHooks.
*/
package observability
