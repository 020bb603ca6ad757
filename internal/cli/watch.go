package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/lattice/internal/presentation/tui"
)

// reloadDelay lets editors finish writing before the scenario is read again.
const reloadDelay = 100 * time.Millisecond

// RunWatch runs the scenario and runs it again every time the file changes,
// until ctx is cancelled. Failures of a single run are reported and do not
// stop the watcher.
func RunWatch(ctx context.Context, opts RunOptions, out io.Writer) error {
	logger := createLogger(opts)

	path, err := filepath.Abs(opts.File)
	if err != nil {
		return fmt.Errorf("failed to resolve scenario path: %w", err)
	}
	opts.File = path

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	tui.PrintBanner(out)
	logger.Info("Starting Watcher", "path", path)
	for {
		if err := RunScenario(opts, out); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		printSystemMessage(out, "Waiting for changes...")

		if !waitForChange(ctx, logger, watcher, path) {
			logger.Info("Stopping watcher")
			return nil
		}
		printSystemMessage(out, "Change detected in '%s'.", filepath.Base(path))
	}
}

// waitForChange blocks until path is written or recreated. It returns false
// when ctx is done or the watcher is closed.
func waitForChange(ctx context.Context, logger *slog.Logger, watcher *fsnotify.Watcher, path string) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case err, ok := <-watcher.Errors:
			if !ok {
				return false
			}
			logger.Warn("watcher error", "err", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return false
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			select {
			case <-ctx.Done():
				return false
			case <-time.After(reloadDelay):
			}
			drain(watcher)
			return true
		}
	}
}

// drain discards events queued while the delay elapsed.
func drain(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-watcher.Events:
		default:
			return
		}
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, ">>> %s\n", fmt.Sprintf(format, args...))
}
