package dsl

import (
	"reflect"

	"github.com/google/go-cmp/cmp"

	"github.com/aretw0/lattice/pkg/schema"
)

// Transition is a state committed to a store while a step ran.
type Transition struct {
	Step  int    `json:"step"`
	Store string `json:"store"`
	State any    `json:"state"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index  int    `json:"index"`
	Action Action `json:"action"`
	Target string `json:"target"`
	Err    error  `json:"-"`
}

// Report is the outcome of a run.
type Report struct {
	Name        string         `json:"name"`
	Steps       []StepResult   `json:"steps"`
	Transitions []Transition   `json:"transitions"`
	Final       map[string]any `json:"final"`
}

// Failed returns the steps that did not succeed.
func (r *Report) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// TransitionsOf returns the transitions recorded during step i.
func (r *Report) TransitionsOf(i int) []Transition {
	var out []Transition
	for _, t := range r.Transitions {
		if t.Step == i {
			out = append(out, t)
		}
	}
	return out
}

// Run executes steps in order. A failing step, whether it panicked or its
// expectation did not hold, is recorded and the run continues. The returned
// error aggregates every failure as a *StepError; the report is returned
// either way.
func (p *Program) Run(steps []Step) (*Report, error) {
	report := &Report{Name: p.doc.Name}

	p.trace = nil
	p.recording = true
	defer func() {
		p.recording = false
		p.trace = nil
	}()

	var errs []error
	for i, st := range steps {
		p.step = i
		err := p.exec(st)
		report.Steps = append(report.Steps, StepResult{
			Index:  i,
			Action: st.Action(),
			Target: st.Target(),
			Err:    err,
		})
		if err != nil {
			p.logger.Warn("step failed", "index", i, "action", st.Action(), "target", st.Target(), "err", err)
			errs = append(errs, &StepError{Index: i, Action: st.Action(), Target: st.Target(), Err: err})
			continue
		}
		p.logger.Debug("step done", "index", i, "action", st.Action(), "target", st.Target())
	}

	report.Transitions = p.trace
	report.Final = p.Snapshot()
	return report, schema.Aggregate(errs)
}

func (p *Program) exec(st Step) error {
	switch st.Action() {
	case ActionExpect:
		got, err := p.State(st.Expect.Store)
		if err != nil {
			return err
		}
		if !Equal(st.Expect.State, got) {
			return &ExpectationError{Store: st.Expect.Store, Want: st.Expect.State, Got: got}
		}
		return nil
	case ActionSet:
		return p.Set(st.Set, st.Value)
	default:
		return p.Emit(st.Emit, st.Payload)
	}
}

// Equal compares two scenario values. Numbers compare by value regardless
// of their Go type, so 2 from YAML equals 2.0 from JSON or Lua.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, numericEqual, cmp.Exporter(func(reflect.Type) bool { return true }))
}

// numericEqual compares any two numbers as float64.
var numericEqual = cmp.FilterValues(func(a, b any) bool {
	_, okA := toFloat(a)
	_, okB := toFloat(b)
	return okA && okB
}, cmp.Comparer(func(a, b any) bool {
	x, _ := toFloat(a)
	y, _ := toFloat(b)
	return x == y
}))

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
