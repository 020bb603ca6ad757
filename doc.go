/*
Package lattice is a synchronous push-based reactive store engine.

Stores hold state, events drive them, and derived stores follow their sources.
Every change travels through a small propagation graph on the calling
goroutine, so by the time an Emit or SetState returns every derived store and
subscriber has seen the new value.

# Concept

A store is a cell with a canonical pipeline: a filter that drops nil and
unchanged values, an update of the cell, and a fan-out to everything attached
downstream. Events append handlers to that pipeline with On, derived stores
hang off it with Map, and subscribers sit at its tail.

# Usage

	count := lattice.CreateStore(0, lattice.WithName("count"))
	inc := lattice.CreateEvent("inc")

	count.On(inc, func(state, payload any, _ string) any {
		return state.(int) + payload.(int)
	})
	doubled := count.Map(func(state, _ any) any { return state.(int) * 2 })

	unsubscribe, _ := doubled.Subscribe(func(state any) {
		fmt.Println("doubled:", state)
	})
	defer unsubscribe()

	inc.Emit(2)

# Scenarios

Stores and events can also be declared in YAML, with Lua reducers and Lua or
JSONPath mappers, and driven step by step. See package dsl and the lattice
command.
*/
package lattice
