package script

import (
	"encoding/json"
	"math"

	"github.com/Shopify/go-lua"
)

// setupSandbox opens the safe libraries and removes everything that reaches
// outside the interpreter.
func setupSandbox(l *lua.State) {
	lua.Require(l, "_G", lua.BaseOpen, true)
	l.Pop(1)
	lua.Require(l, "string", lua.StringOpen, true)
	l.Pop(1)
	lua.Require(l, "table", lua.TableOpen, true)
	l.Pop(1)
	lua.Require(l, "math", lua.MathOpen, true)
	l.Pop(1)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "print"} {
		l.PushNil()
		l.SetGlobal(name)
	}
}

// pushValue converts a Go value to Lua. Types without a direct mapping go
// through their JSON representation.
func pushValue(l *lua.State, v any) {
	switch val := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(val)
	case int:
		l.PushInteger(val)
	case int64:
		l.PushInteger(int(val))
	case int32:
		l.PushInteger(int(val))
	case float64:
		l.PushNumber(val)
	case float32:
		l.PushNumber(float64(val))
	case string:
		l.PushString(val)
	case []any:
		l.NewTable()
		for i, item := range val {
			l.PushInteger(i + 1)
			pushValue(l, item)
			l.SetTable(-3)
		}
	case map[string]any:
		l.NewTable()
		for k, item := range val {
			l.PushString(k)
			pushValue(l, item)
			l.SetTable(-3)
		}
	default:
		data, err := json.Marshal(val)
		if err != nil {
			l.PushNil()
			return
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			l.PushNil()
			return
		}
		pushValue(l, generic)
	}
}

// pullValue converts the Lua value at idx to Go. Integral numbers become int.
// Tables with only positive integer keys become []any, other tables
// map[string]any.
func pullValue(l *lua.State, idx int) any {
	switch l.TypeOf(idx) {
	case lua.TypeBoolean:
		return l.ToBoolean(idx)
	case lua.TypeNumber:
		n, _ := l.ToNumber(idx)
		return number(n)
	case lua.TypeString:
		s, _ := l.ToString(idx)
		return s
	case lua.TypeTable:
		return pullTable(l, idx)
	default:
		return nil
	}
}

func pullTable(l *lua.State, idx int) any {
	l.PushValue(idx)
	defer l.Pop(1)

	isArray := true
	maxIndex := 0
	l.PushNil()
	for l.Next(-2) {
		n, ok := l.ToNumber(-2)
		if l.TypeOf(-2) != lua.TypeNumber || !ok || n != math.Trunc(n) || n < 1 {
			isArray = false
			l.Pop(2)
			break
		}
		if int(n) > maxIndex {
			maxIndex = int(n)
		}
		l.Pop(1)
	}

	if isArray && maxIndex > 0 {
		arr := make([]any, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			l.PushInteger(i)
			l.Table(-2)
			arr[i-1] = pullValue(l, -1)
			l.Pop(1)
		}
		return arr
	}

	obj := make(map[string]any)
	l.PushNil()
	for l.Next(-2) {
		var key string
		if l.TypeOf(-2) == lua.TypeNumber {
			n, _ := l.ToNumber(-2)
			key = formatNumber(n)
		} else {
			key, _ = l.ToString(-2)
		}
		obj[key] = pullValue(l, -1)
		l.Pop(1)
	}
	return obj
}

func number(n float64) any {
	if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
		return int(n)
	}
	return n
}

func formatNumber(n float64) string {
	data, _ := json.Marshal(number(n))
	return string(data)
}
