// Package script compiles Lua chunks into store handlers and map functions.
//
// A chunk sees the store state (and the event payload or the previous
// derived state) as globals and returns the next value:
//
//	add, _ := script.Reducer("return state + payload")
//	count.On(inc, add)
//
// The "return" keyword may be omitted for single expressions. Scripts run in
// a sandbox with only the base, string, table and math libraries, and every
// call gets a fresh interpreter, so no state leaks between invocations.
package script
