package graph_test

import (
	"testing"

	"github.com/aretw0/lattice/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunch_SeqShortCircuits(t *testing.T) {
	var seen []any
	root := graph.Seq(
		graph.Single(graph.Compute(func(v any) any { return v.(int) * 10 })),
		graph.Single(graph.Filter(func(v any) bool { return v.(int) > 10 })),
		graph.Single(graph.Run(func(v any) { seen = append(seen, v) })),
	)

	graph.Launch(root, 1)
	assert.Empty(t, seen, "filter should block 10")

	graph.Launch(root, 2)
	assert.Equal(t, []any{20}, seen)
}

func TestLaunch_ComputeForwardsNil(t *testing.T) {
	reached := false
	var got any = "unset"
	root := graph.Seq(
		graph.Single(graph.Compute(func(any) any { return nil })),
		graph.Single(graph.Run(func(v any) {
			reached = true
			got = v
		})),
	)

	graph.Launch(root, 42)
	assert.True(t, reached)
	assert.Nil(t, got)
}

func TestLaunch_UpdateCommitsAndContinues(t *testing.T) {
	cell := graph.NewCell(1)
	var commits [][2]any
	var after any
	root := graph.Seq(
		graph.Single(graph.Update(cell, func(prev, next any) {
			commits = append(commits, [2]any{prev, next})
		})),
		graph.Single(graph.Run(func(v any) { after = v })),
	)

	graph.Launch(root, 7)
	assert.Equal(t, 7, cell.Current())
	assert.Equal(t, 7, after)
	assert.Equal(t, [][2]any{{1, 7}}, commits)
}

func TestLaunch_MultiBroadcastsIndependently(t *testing.T) {
	next := graph.NewFanOut()
	var order []string
	next.Append(graph.Seq(
		graph.Single(graph.Filter(func(any) bool { return false })),
		graph.Single(graph.Run(func(any) { order = append(order, "blocked") })),
	))
	next.Append(graph.Single(graph.Run(func(v any) { order = append(order, "a") })))
	next.Append(graph.Single(graph.Run(func(v any) { order = append(order, "b") })))

	graph.Launch(graph.Multi(next), "x")
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestLaunch_NilRoot(t *testing.T) {
	assert.NotPanics(t, func() { graph.Launch(nil, 1) })
}

func TestFanOut_Handles(t *testing.T) {
	f := graph.NewFanOut()
	n := graph.Single(graph.Run(func(any) {}))

	h1 := f.Append(n)
	h2 := f.Append(n)
	require.NotEqual(t, h1, h2, "the same node attached twice gets distinct handles")
	assert.Equal(t, 2, f.Len())

	assert.True(t, f.Remove(h1))
	assert.False(t, f.Remove(h1), "second removal is a no-op")
	assert.False(t, f.Has(h1))
	assert.True(t, f.Has(h2))
	assert.Equal(t, []*graph.Node{n}, f.Nodes())
}

func TestFanOut_AppendDuringPropagation(t *testing.T) {
	next := graph.NewFanOut()
	root := graph.Multi(next)
	calls := map[string]int{}

	next.Append(graph.Single(graph.Run(func(any) {
		calls["first"]++
		if calls["first"] == 1 {
			next.Append(graph.Single(graph.Run(func(any) { calls["late"]++ })))
		}
	})))
	next.Append(graph.Single(graph.Run(func(any) { calls["second"]++ })))

	graph.Launch(root, 1)
	assert.Equal(t, map[string]int{"first": 1, "second": 1}, calls,
		"an entry appended mid-propagation waits for the next one")

	graph.Launch(root, 2)
	assert.Equal(t, map[string]int{"first": 2, "second": 2, "late": 1}, calls)
}

func TestFanOut_RemoveDuringPropagation(t *testing.T) {
	next := graph.NewFanOut()
	calls := 0
	var victim graph.Handle

	next.Append(graph.Single(graph.Run(func(any) { next.Remove(victim) })))
	victim = next.Append(graph.Single(graph.Run(func(any) { calls++ })))

	graph.Launch(graph.Multi(next), 1)
	assert.Zero(t, calls, "an entry removed mid-propagation is skipped")
	assert.Equal(t, 1, next.Len())
}

func TestNode_Introspection(t *testing.T) {
	cell := graph.NewCell(nil)
	next := graph.NewFanOut()
	canonical := graph.Seq(
		graph.Single(graph.Update(cell)),
		graph.Multi(next),
	)
	canonical.Label = "counter"
	attachment := graph.Seq(
		graph.Single(graph.Compute(func(v any) any { return v })),
		canonical,
	)

	assert.Equal(t, graph.KindSeq, attachment.Kind())
	assert.Len(t, attachment.Steps(), 2)
	assert.Same(t, canonical, attachment.Last())
	assert.Same(t, cell, canonical.Steps()[0].Child().Cell())
	assert.Same(t, next, canonical.Steps()[1].Next())

	run := graph.Single(graph.Run(func(any) {}))
	assert.Equal(t, graph.KindRun, run.Last().Kind())
	assert.Nil(t, run.Steps())
}

func TestConstructors_RejectNil(t *testing.T) {
	assert.Panics(t, func() { graph.Filter(nil) })
	assert.Panics(t, func() { graph.Compute(nil) })
	assert.Panics(t, func() { graph.Run(nil) })
	assert.Panics(t, func() { graph.Update(nil) })
	assert.Panics(t, func() { graph.Single(nil) })
	assert.Panics(t, func() { graph.Seq(graph.Run(func(any) {}), nil) })
	assert.NotNil(t, graph.Multi(nil).Next())
}

func TestCell_Identity(t *testing.T) {
	a := graph.NewCell(0)
	b := graph.NewCell(0)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 0, a.Current())
}
