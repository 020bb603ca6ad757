/*
Package store implements reactive stores on top of the graph primitives.

A Store owns one graph.Cell and a canonical pipeline

	Filter(value != nil && value is not the current state) -> Update(cell) -> Multi(next)

through which every state change passes. Events drive a store through On,
imperative writes go through SetState (backed by a private event), derived
stores hang off the fan-out tail via Map, and subscribers are Run nodes on
the same tail.

	count := store.New(0, store.WithName("count"))
	inc := event.New("inc")
	count.On(inc, func(state, payload any, _ string) any {
		return state.(int) + payload.(int)
	})
	doubled := count.Map(func(state, _ any) any { return state.(int) * 2 })

	inc.Emit(5) // count = 5, doubled = 10

nil plays the role of "no value": a handler or map function returning nil
leaves the store untouched, and nil can never be written after creation.

Everything runs synchronously on the calling goroutine. Stores are not safe
for concurrent use.
*/
package store
