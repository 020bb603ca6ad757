/*
Package dsl describes lattice programs as scenario documents.

A scenario declares events, stores and the steps to drive them. It can be
written in YAML and parsed with Parse, or assembled in Go with the fluent
Builder:

	name: counter
	events: [inc, clear]
	stores:
	  - name: count
	    initial: 0
	    on:
	      - event: inc
	        reduce: "return state + payload"
	    reset: [clear]
	  - name: doubled
	    map: { from: count, script: "return state * 2" }
	steps:
	  - emit: inc
	    payload: 5
	  - expect: { store: doubled, state: 10 }

The same program in Go:

	b := dsl.New("counter").Events("inc", "clear")
	b.Store("count").Initial(0).On("inc", "return state + payload").Reset("clear")
	b.Store("doubled").MapScript("count", "return state * 2")
	b.Emit("inc", 5).Expect("doubled", 10)

	prog, err := b.Build()
	report, err := prog.Run(prog.Steps())

Build wires the document into real stores and events: reducers and mappers
are Lua chunks (package script), path mappers are JSONPath expressions
(package selector). Run executes the steps and records every committed
state as a Transition.
*/
package dsl
