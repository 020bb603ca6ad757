package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CounterScenario is a small scenario exercising reducers, resets, script
// and path mappers, and expectations.
const CounterScenario = `
name: counter
events: [inc, clear]
stores:
  - name: count
    initial: 0
    on:
      - event: inc
        reduce: "return state + payload"
    reset: [clear]
  - name: doubled
    map: { from: count, script: "return state * 2" }
  - name: profile
    initial: { name: ada }
  - name: label
    map: { from: profile, path: "$.name" }
steps:
  - emit: inc
    payload: 5
  - set: count
    value: 10
  - expect: { store: doubled, state: 20 }
  - emit: clear
  - set: profile
    value: { name: grace }
  - expect: { store: label, state: grace }
`

// WriteScenario writes content to a file in a fresh temporary directory and
// returns its absolute path. It fails the test immediately on error.
func WriteScenario(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	absDir, err := filepath.Abs(dir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	path := filepath.Join(absDir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write scenario")
	return path
}
