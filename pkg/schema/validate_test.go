package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() map[string]any {
	return map[string]any{
		"name":   "counter",
		"events": []any{"inc", "clear"},
		"stores": []any{
			map[string]any{
				"name":    "count",
				"initial": 0,
				"on":      []any{map[string]any{"event": "inc", "reduce": "return state + payload"}},
				"reset":   []any{"clear"},
			},
			map[string]any{
				"name": "doubled",
				"map":  map[string]any{"from": "count", "script": "return state * 2"},
			},
		},
		"steps": []any{
			map[string]any{"emit": "inc", "payload": 5},
			map[string]any{"set": "count", "value": 10},
			map[string]any{"expect": map[string]any{"store": "doubled", "state": 20}},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validDocument()))
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
		field  string
	}{
		{
			name:   "missing stores",
			mutate: func(doc map[string]any) { delete(doc, "stores") },
			field:  "(root)",
		},
		{
			name:   "unknown top-level key",
			mutate: func(doc map[string]any) { doc["nodes"] = []any{} },
			field:  "(root)",
		},
		{
			name: "store without name",
			mutate: func(doc map[string]any) {
				doc["stores"] = []any{map[string]any{"initial": 1}}
			},
			field: "stores.0",
		},
		{
			name: "map with script and path",
			mutate: func(doc map[string]any) {
				doc["stores"] = []any{map[string]any{
					"name": "x",
					"map":  map[string]any{"from": "y", "script": "state", "path": "$.a"},
				}}
			},
			field: "stores.0.map",
		},
		{
			name: "step with two actions",
			mutate: func(doc map[string]any) {
				doc["steps"] = []any{map[string]any{"emit": "inc", "set": "count", "value": 1}}
			},
			field: "steps.0",
		},
		{
			name: "duplicate events",
			mutate: func(doc map[string]any) {
				doc["events"] = []any{"inc", "inc"}
			},
			field: "events",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			err := Validate(doc)
			require.Error(t, err)

			var fields []string
			for _, e := range ValidationErrors(err) {
				var verr *ValidationError
				require.True(t, errors.As(e, &verr))
				fields = append(fields, verr.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestAggregate(t *testing.T) {
	a := &ValidationError{Field: "a", Reason: "required"}
	b := &ValidationError{Field: "b", Reason: "unknown", Value: 3}

	assert.NoError(t, Aggregate(nil))
	assert.Same(t, a, Aggregate([]error{a}))

	err := Aggregate([]error{a, b})
	var aggr *AggregateError
	require.ErrorAs(t, err, &aggr)
	assert.Len(t, aggr.Errors, 2)
	assert.ErrorIs(t, err, b)
	assert.True(t, strings.HasPrefix(err.Error(), "2 validation errors:"))
	assert.Contains(t, err.Error(), `field "b": unknown (got int)`)
}

func TestValidationErrors(t *testing.T) {
	assert.Nil(t, ValidationErrors(nil))

	plain := errors.New("plain")
	assert.Equal(t, []error{plain}, ValidationErrors(plain))
}

func TestSource(t *testing.T) {
	src := Source()
	assert.Contains(t, string(src), `"stores"`)
	src[0] = 'x'
	assert.NotEqual(t, byte('x'), Source()[0])
}
