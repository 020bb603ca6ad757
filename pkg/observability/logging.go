package observability

import (
	"log/slog"

	"github.com/aretw0/lattice/pkg/domain"
)

// LoggingHooks returns hooks that log every commit at info level and every
// notification at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnUpdate: func(e *domain.UpdateEvent) {
			logger.Info("store_update", "store", e.Store, "prev", e.Prev, "next", e.Next)
		},
		OnNotify: func(e *domain.NotifyEvent) {
			logger.Debug("store_notify", "store", e.Store, "state", e.State)
		},
	}
}
