package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/aretw0/lattice/pkg/dsl"
)

type stepView struct {
	Index  int        `json:"index"`
	Action dsl.Action `json:"action"`
	Target string     `json:"target"`
	Error  string     `json:"error,omitempty"`
}

type reportView struct {
	Name        string           `json:"name"`
	Steps       []stepView       `json:"steps"`
	Transitions []dsl.Transition `json:"transitions"`
	Final       map[string]any   `json:"final"`
	Failed      int              `json:"failed"`
}

// RunScenario executes the steps of the scenario and writes the outcome to out.
// It returns an error when the scenario cannot be built or any step failed.
func RunScenario(opts RunOptions, out io.Writer) error {
	logger := createLogger(opts)

	program, err := createProgram(opts, logger)
	if err != nil {
		return err
	}

	report, runErr := program.Run(program.Steps())
	logger.Info("scenario finished", "name", report.Name, "steps", len(report.Steps), "failed", len(report.Failed()))

	if err := writeReport(opts, out, report); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("%d of %d steps failed: %w", len(report.Failed()), len(report.Steps), runErr)
	}
	return nil
}

func writeReport(opts RunOptions, out io.Writer, report *dsl.Report) error {
	switch {
	case opts.JSON:
		return writeJSON(out, report)
	case opts.Render && isTerminal(out):
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		rendered, err := render(tui.ReportMarkdown(report))
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	case opts.Render:
		_, err := fmt.Fprint(out, tui.ReportMarkdown(report))
		return err
	default:
		writeTrace(profileFor(out), out, report)
		return nil
	}
}

func writeTrace(p termenv.Profile, out io.Writer, report *dsl.Report) {
	for _, s := range report.Steps {
		fmt.Fprintln(out, tui.FormatStep(p, s))
		for _, t := range report.TransitionsOf(s.Index) {
			fmt.Fprintf(out, "    %s\n", tui.FormatTransition(p, t))
		}
	}
}

func writeJSON(out io.Writer, report *dsl.Report) error {
	view := reportView{
		Name:        report.Name,
		Transitions: report.Transitions,
		Final:       report.Final,
		Failed:      len(report.Failed()),
	}
	if view.Transitions == nil {
		view.Transitions = []dsl.Transition{}
	}
	for _, s := range report.Steps {
		sv := stepView{Index: s.Index, Action: s.Action, Target: s.Target}
		if s.Err != nil {
			sv.Error = s.Err.Error()
		}
		view.Steps = append(view.Steps, sv)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// profileFor picks the color profile of out; anything that is not a
// terminal gets plain text.
func profileFor(out io.Writer) termenv.Profile {
	if !isTerminal(out) {
		return termenv.Ascii
	}
	return termenv.NewOutput(out).Profile
}
