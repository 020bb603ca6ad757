package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aretw0/lattice"
	httpAdapter "github.com/aretw0/lattice/pkg/adapters/http"
	"github.com/aretw0/lattice/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// NewServer builds the HTTP server for the scenario without starting it.
// The scenario steps are not run; clients drive the stores over the API.
func NewServer(opts RunOptions, addr string) (*http.Server, error) {
	logger := createLogger(opts)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	program, err := createProgram(opts, logger, metrics.Hooks())
	if err != nil {
		return nil, err
	}

	handler := httpAdapter.NewHandler(program,
		httpAdapter.WithGatherer(reg),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithVersion(strings.TrimSpace(lattice.Version)),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Serve exposes the scenario over HTTP until ctx is cancelled, then shuts the
// server down gracefully.
func Serve(ctx context.Context, opts RunOptions, port string, out io.Writer) error {
	srv, err := NewServer(opts, ":"+port)
	if err != nil {
		return err
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		fmt.Fprintf(out, "Starting Lattice Server on %s\n", srv.Addr)
		fmt.Fprintf(out, "Serving scenario: %s\n", opts.File)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(out, "\nStart shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(out, "Graceful shutdown did not complete in %v: %v\n", shutdownTimeout, err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Fprintln(out, "Lattice Server stopped gracefully")
		return nil
	}
}
