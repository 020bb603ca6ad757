package store_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/event"
	"github.com/aretw0/lattice/pkg/graph"
	"github.com/aretw0/lattice/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_ImmediateCall(t *testing.T) {
	s := store.New("now")
	var calls []any
	unsub, err := s.Subscribe(func(state any) { calls = append(calls, state) })
	require.NoError(t, err)
	require.NotNil(t, unsub)

	assert.Equal(t, []any{"now"}, calls)
	assert.Equal(t, 1, s.Subscribers())
}

func TestSubscribe_NodeShape(t *testing.T) {
	s := store.New(0)
	_, err := s.Subscribe(func(any) {})
	require.NoError(t, err)

	nodes := s.Next().Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, graph.KindSingle, nodes[0].Kind())
	assert.Equal(t, graph.KindRun, nodes[0].Child().Kind())
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := store.New(0)
	var calls []any
	unsub, err := s.Subscribe(func(state any) { calls = append(calls, state) })
	require.NoError(t, err)

	s.SetState(1)
	unsub()
	s.SetState(2)
	unsub.Unsubscribe()
	unsub()

	assert.Equal(t, []any{0, 1}, calls)
	assert.Zero(t, s.Subscribers())
	assert.Zero(t, s.Next().Len())
}

func TestSubscribe_UnsubscribeDuringPropagation(t *testing.T) {
	s := store.New(0)
	var second []any
	var unsubSecond store.Unsubscribe

	_, err := s.Subscribe(func(state any) {
		if state.(int) == 1 {
			unsubSecond()
		}
	})
	require.NoError(t, err)
	unsubSecond, err = s.Subscribe(func(state any) { second = append(second, state) })
	require.NoError(t, err)

	s.SetState(1)
	assert.Equal(t, []any{0}, second, "removed entry is skipped immediately")
}

func TestSubscribe_AddedDuringPropagation(t *testing.T) {
	s := store.New(0)
	var late []any

	_, err := s.Subscribe(func(state any) {
		if state.(int) == 1 {
			_, _ = s.Subscribe(func(v any) { late = append(late, v) })
		}
	})
	require.NoError(t, err)

	s.SetState(1)
	assert.Equal(t, []any{1}, late, "only the immediate call")

	s.SetState(2)
	assert.Equal(t, []any{1, 2}, late)
}

func TestSubscribe_Reentrant(t *testing.T) {
	a := store.New(0)
	b := store.New(0)
	_, err := a.Subscribe(func(state any) { b.SetState(state.(int) * 3) })
	require.NoError(t, err)
	seen := record(t, b)

	a.SetState(2)
	assert.Equal(t, 6, b.GetState())
	assert.Equal(t, []any{0, 6}, *seen)
}

func TestSubscribe_OrderFollowsAttachment(t *testing.T) {
	s := store.New(0)
	var order []string
	_, _ = s.Subscribe(func(any) { order = append(order, "first") })
	d := s.Map(func(v, _ any) any { return v })
	_, _ = d.Subscribe(func(any) { order = append(order, "derived") })
	_, _ = s.Subscribe(func(any) { order = append(order, "last") })
	order = nil

	s.SetState(1)
	assert.Equal(t, []string{"first", "derived", "last"}, order)
}

func TestSubscribe_LogsListenerFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := store.New(0, store.WithName("noisy"), store.WithLogger(logger))
	_, err := s.Subscribe(func(state any) {
		if state.(int) == 1 {
			panic("kaput")
		}
	})
	require.NoError(t, err)

	s.SetState(1)
	assert.Contains(t, buf.String(), "listener failed")
	assert.Contains(t, buf.String(), "store=noisy")
	assert.Contains(t, buf.String(), "kaput")
}

func TestWatch_Event(t *testing.T) {
	s := store.New("ready")
	ev := event.New("ping")
	type call struct {
		state, payload any
		typ            string
	}
	var calls []call

	unwatch, err := s.Watch(ev, func(state, payload any, eventType string) {
		calls = append(calls, call{state, payload, eventType})
	})
	require.NoError(t, err)

	ev.Emit(1)
	unwatch()
	unwatch()
	ev.Emit(2)

	assert.Equal(t, []call{{"ready", 1, "ping"}}, calls)
}

func TestWatch_ListenerTargets(t *testing.T) {
	s := store.New(1)
	var plain, typed []any

	_, err := s.Watch(func(v any) { plain = append(plain, v) }, nil)
	require.NoError(t, err)
	_, err = s.Watch(store.Listener(func(v any) { typed = append(typed, v) }), nil)
	require.NoError(t, err)

	s.SetState(2)
	assert.Equal(t, []any{1, 2}, plain)
	assert.Equal(t, []any{1, 2}, typed)
}

func TestWatch_InvalidTargets(t *testing.T) {
	s := store.New(0)

	tests := []struct {
		name    string
		target  any
		handler store.WatchHandler
	}{
		{name: "nil target", target: nil},
		{name: "unsupported type", target: 42},
		{name: "event without handler", target: event.New("e")},
		{name: "nil listener", target: store.Listener(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unwatch, err := s.Watch(tt.target, tt.handler)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Nil(t, unwatch)
		})
	}
}

func TestObservable(t *testing.T) {
	s := store.New("a")
	obs := s.Observable()
	assert.Same(t, obs, obs.Observable())

	var got []any
	unsub, err := obs.Subscribe(store.ObserverFunc(func(v any) { got = append(got, v) }))
	require.NoError(t, err)

	s.SetState("b")
	unsub.Unsubscribe()
	s.SetState("c")

	assert.Equal(t, []any{"a", "b"}, got)
}
