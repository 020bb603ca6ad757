package script

import (
	"fmt"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/aretw0/lattice/pkg/store"
)

// Error is the panic value raised when a compiled script fails at runtime.
type Error struct {
	Script string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %q: %v", e.Script, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Reducer compiles src into a store handler. The chunk sees the globals
// state, payload and event.
func Reducer(src string) (store.Handler, error) {
	chunk, err := compile(src)
	if err != nil {
		return nil, err
	}
	return func(state, payload any, eventType string) any {
		return run(chunk, map[string]any{
			"state":   state,
			"payload": payload,
			"event":   eventType,
		})
	}, nil
}

// Mapper compiles src into a map function. The chunk sees the globals state
// and last.
func Mapper(src string) (store.MapFunc, error) {
	chunk, err := compile(src)
	if err != nil {
		return nil, err
	}
	return func(state, last any) any {
		return run(chunk, map[string]any{
			"state": state,
			"last":  last,
		})
	}, nil
}

// compile syntax-checks src and returns the chunk to execute. A chunk that
// does not parse as is gets a second chance as a bare expression.
func compile(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("script is empty")
	}
	err := lua.LoadString(lua.NewState(), src)
	if err == nil {
		return src, nil
	}
	expr := "return " + src
	if lua.LoadString(lua.NewState(), expr) == nil {
		return expr, nil
	}
	return "", fmt.Errorf("failed to compile script: %w", err)
}

func run(chunk string, globals map[string]any) any {
	l := lua.NewState()
	setupSandbox(l)

	for name, value := range globals {
		pushValue(l, value)
		l.SetGlobal(name)
	}

	if err := lua.LoadString(l, chunk); err != nil {
		panic(&Error{Script: summary(chunk), Err: err})
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		panic(&Error{Script: summary(chunk), Err: err})
	}
	result := pullValue(l, -1)
	l.Pop(1)
	return result
}

func summary(chunk string) string {
	s := strings.TrimPrefix(strings.TrimSpace(chunk), "return ")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
