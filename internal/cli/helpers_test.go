package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/t0sync/internal/tzsync"
)

var testNow = time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC)

// testOptions returns root options with deterministic run ids and clock.
func testOptions(format string, runIDs ...string) *RootOptions {
	return &RootOptions{
		Format: format,
		RunIDs: NewFixedGenerator(runIDs...),
		Now:    func() time.Time { return testNow },
	}
}

// execute runs cmd with args and returns stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// recordResponse is a CLIResponse whose data is a single record.
type recordResponse struct {
	Status string        `json:"status"`
	Data   tzsync.Record `json:"data"`
	Error  *CLIError     `json:"error"`
	RunID  string        `json:"run_id"`
}

func decodeJSON(t *testing.T, out string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "t0sync.db")
}
