package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/lattice/internal/presentation/graph"
	"github.com/aretw0/lattice/pkg/dsl"
)

// Graph writes the Mermaid diagram of the scenario to out. With ShowState the
// steps run first and the diagram carries the resulting states, highlighting
// the stores that changed.
func Graph(opts RunOptions, out io.Writer) error {
	logger := createLogger(opts)

	program, err := createProgram(opts, logger)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.ShowState {
		report, runErr := program.Run(program.Steps())
		if runErr != nil {
			logger.Warn("scenario had failing steps", "failed", len(report.Failed()))
		}
		overlay = &graph.GraphOverlay{ShowState: true, Changed: changedStores(report.Transitions)}
	}

	_, err = fmt.Fprint(out, graph.GenerateMermaid(program.Topology(), overlay))
	return err
}

func changedStores(transitions []dsl.Transition) []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range transitions {
		if !seen[t.Store] {
			seen[t.Store] = true
			names = append(names, t.Store)
		}
	}
	return names
}
