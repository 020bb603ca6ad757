// Package selector derives store values with JSONPath expressions.
//
//	profile := store.New(map[string]any{"name": "ada", "langs": []any{"go"}})
//	name := profile.Map(selector.MustPath("$.name"))
//
// The first match becomes the derived state; no match yields nil, which
// leaves the derived store unchanged. Single-element arrays are unwrapped.
package selector

import (
	"encoding/json"
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/aretw0/lattice/pkg/store"
)

// Path compiles expr into a map function.
func Path(expr string) (store.MapFunc, error) {
	if expr == "" {
		return nil, fmt.Errorf("path is required")
	}
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression %q: %w", expr, err)
	}
	return func(state, _ any) any {
		return First(x, state)
	}, nil
}

// MustPath is like Path but panics if expr does not compile.
func MustPath(expr string) store.MapFunc {
	fn, err := Path(expr)
	if err != nil {
		panic(err)
	}
	return fn
}

// First returns the first match of x in data, or nil.
func First(x jp.Expr, data any) any {
	results := x.Get(generic(data))
	if len(results) == 0 {
		return nil
	}
	result := results[0]
	if arr, ok := result.([]any); ok && len(arr) == 1 {
		result = arr[0]
	}
	return result
}

// generic converts values jp can not walk natively to their JSON form.
func generic(data any) any {
	switch data.(type) {
	case nil, map[string]any, []any:
		return data
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return data
	}
	return out
}
