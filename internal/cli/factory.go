package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/dsl"
	"github.com/aretw0/lattice/pkg/observability"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the Stdout trace).
func createLogger(opts RunOptions) *slog.Logger {
	if opts.Debug {
		return logging.New(slog.LevelDebug, logging.ParseFormat(opts.LogFormat), os.Stderr)
	}
	return logging.New(slog.LevelWarn, logging.ParseFormat(opts.LogFormat), os.Stderr)
}

// createProgram loads and builds the scenario with standard CLI conventions.
func createProgram(opts RunOptions, logger *slog.Logger, extra ...domain.LifecycleHooks) (*dsl.Program, error) {
	if opts.File == "" {
		return nil, fmt.Errorf("no scenario file given")
	}

	doc, err := dsl.ParseFile(opts.File)
	if err != nil {
		return nil, err
	}

	hooks := extra
	if opts.Debug {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}

	program, err := dsl.Build(doc,
		dsl.WithLogger(logger),
		dsl.WithHooks(domain.MergeHooks(hooks...)),
	)
	if err != nil {
		return nil, fmt.Errorf("error building scenario: %w", err)
	}
	return program, nil
}
