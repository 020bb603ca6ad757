package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/store"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, storeName string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "store" && l.GetValue() == storeName {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	s := store.New(0, store.WithName("count"), store.WithHooks(m.Hooks()))
	_, err = s.Subscribe(func(state any) {
		if state.(int) == 2 {
			panic("two")
		}
	})
	require.NoError(t, err)

	s.SetState(1)
	s.SetState(2)
	s.SetState(2)

	assert.Equal(t, 2.0, counterValue(t, reg, "lattice_store_updates_total", "count"))
	assert.Equal(t, 3.0, counterValue(t, reg, "lattice_store_notifications_total", "count"))
	assert.Equal(t, 1.0, counterValue(t, reg, "lattice_listener_errors_total", "count"))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var reported int
	hooks := domain.MergeHooks(LoggingHooks(logger), domain.LifecycleHooks{
		OnUpdate: func(*domain.UpdateEvent) { reported++ },
	})
	s := store.New("a", store.WithName("letters"), store.WithHooks(hooks))
	_, err := s.Subscribe(func(any) {})
	require.NoError(t, err)

	s.SetState("b")

	out := buf.String()
	assert.Contains(t, out, "msg=store_update store=letters prev=a next=b")
	assert.Contains(t, out, "msg=store_notify store=letters state=b")
	assert.Equal(t, 1, reported)
}
