package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/lattice/pkg/domain"
)

// Metrics counts store activity per store display name.
type Metrics struct {
	Updates        *prometheus.CounterVec
	Notifications  *prometheus.CounterVec
	ListenerErrors *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_store_updates_total",
				Help: "Total number of values committed to a store",
			},
			[]string{"store"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_store_notifications_total",
				Help: "Total number of states delivered to subscribers",
			},
			[]string{"store"},
		),
		ListenerErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lattice_listener_errors_total",
				Help: "Total number of subscriber panics recovered",
			},
			[]string{"store"},
		),
	}

	for _, c := range []prometheus.Collector{m.Updates, m.Notifications, m.ListenerErrors} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnUpdate: func(e *domain.UpdateEvent) {
			m.Updates.WithLabelValues(e.Store).Inc()
		},
		OnNotify: func(e *domain.NotifyEvent) {
			m.Notifications.WithLabelValues(e.Store).Inc()
		},
		OnListenerError: func(e *domain.ListenerErrorEvent) {
			m.ListenerErrors.WithLabelValues(e.Store).Inc()
		},
	}
}
