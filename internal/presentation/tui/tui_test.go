package tui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lattice/pkg/dsl"
)

func TestFormatTransition(t *testing.T) {
	got := FormatTransition(termenv.Ascii, dsl.Transition{Step: 3, Store: "count", State: 5})
	assert.Equal(t, "[03] count → 5", got)

	got = FormatTransition(termenv.Ascii, dsl.Transition{Step: 0, Store: "profile", State: map[string]any{"name": "ada"}})
	assert.Equal(t, `[00] profile → {"name":"ada"}`, got)
}

func TestFormatStep(t *testing.T) {
	assert.Equal(t, "✓ emit inc", FormatStep(termenv.Ascii, dsl.StepResult{Action: dsl.ActionEmit, Target: "inc"}))
	assert.Equal(t, "✗ expect count: nope",
		FormatStep(termenv.Ascii, dsl.StepResult{Action: dsl.ActionExpect, Target: "count", Err: errors.New("nope")}))
}

func TestReportMarkdown(t *testing.T) {
	r := &dsl.Report{
		Name: "counter",
		Steps: []dsl.StepResult{
			{Index: 0, Action: dsl.ActionEmit, Target: "inc"},
			{Index: 1, Action: dsl.ActionExpect, Target: "count", Err: errors.New("a|b")},
		},
		Transitions: []dsl.Transition{{Step: 0, Store: "count", State: 5}},
		Final:       map[string]any{"count": 5, "label": "x"},
	}

	md := ReportMarkdown(r)
	assert.Contains(t, md, "# counter")
	assert.Contains(t, md, "| 0 | emit | inc | ok |")
	assert.Contains(t, md, `| 1 | expect | count | **failed**: a\|b |`)
	assert.Contains(t, md, "| 0 | count | `5` |")
	assert.Contains(t, md, "| label | `x` |")

	empty := ReportMarkdown(&dsl.Report{})
	assert.Contains(t, empty, "# scenario")
	assert.Contains(t, empty, "_none_")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|\\__,_|")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer()
	require.NoError(t, err)
	out, err := render("# title")
	require.NoError(t, err)
	assert.Contains(t, out, "title")
}
