package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/lattice/pkg/dsl"
)

// FormatTransition renders one transition as a colored trace line.
func FormatTransition(p termenv.Profile, t dsl.Transition) string {
	step := p.String(fmt.Sprintf("[%02d]", t.Step)).Foreground(p.Color("#6b7280"))
	name := p.String(t.Store).Foreground(p.Color("#22d3ee")).Bold()
	state := p.String(FormatValue(t.State)).Foreground(p.Color("#fbbf24"))
	return fmt.Sprintf("%s %s → %s", step, name, state)
}

// FormatStep renders the outcome of a step.
func FormatStep(p termenv.Profile, s dsl.StepResult) string {
	head := fmt.Sprintf("%s %s", s.Action, s.Target)
	if s.Err != nil {
		mark := p.String("✗").Foreground(p.Color("#f87171"))
		return fmt.Sprintf("%s %s: %v", mark, head, s.Err)
	}
	return fmt.Sprintf("%s %s", p.String("✓").Foreground(p.Color("#34d399")), head)
}

// FormatValue renders a state compactly: strings as is, everything else as JSON.
func FormatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// ReportMarkdown renders a run report as markdown, suited to glamour.
func ReportMarkdown(r *dsl.Report) string {
	var sb strings.Builder
	name := r.Name
	if name == "" {
		name = "scenario"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)

	sb.WriteString("## Steps\n\n| # | Action | Target | Result |\n|---|---|---|---|\n")
	for _, s := range r.Steps {
		result := "ok"
		if s.Err != nil {
			result = "**failed**: " + escapeCell(s.Err.Error())
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", s.Index, s.Action, s.Target, result)
	}

	sb.WriteString("\n## Transitions\n\n")
	if len(r.Transitions) == 0 {
		sb.WriteString("_none_\n")
	} else {
		sb.WriteString("| Step | Store | State |\n|---|---|---|\n")
		for _, t := range r.Transitions {
			fmt.Fprintf(&sb, "| %d | %s | `%s` |\n", t.Step, t.Store, escapeCell(FormatValue(t.State)))
		}
	}

	sb.WriteString("\n## Final state\n\n| Store | State |\n|---|---|\n")
	names := make([]string, 0, len(r.Final))
	for n := range r.Final {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&sb, "| %s | `%s` |\n", n, escapeCell(FormatValue(r.Final[n])))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}
