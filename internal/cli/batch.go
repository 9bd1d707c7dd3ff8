package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/t0sync/internal/tzsync"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Workers int
}

// BatchResult is the JSON payload of the batch command.
type BatchResult struct {
	Records []tzsync.Record       `json:"records"`
	Total   int                   `json:"total"`
	Counts  map[tzsync.Status]int `json:"counts"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <requests-file>",
		Short: "Convert a file of facility-local timestamps to UTC",
		Long: `Convert many facility-local timestamps concurrently.

The requests file is a YAML (or JSON) list of objects:

  - facility_id: FAC_001
    local_timestamp: "2025-10-25 14:30:00"
  - facility_id: FAC_002
    local_timestamp: "2024-11-03 01:30:00"

Records are printed in input order, followed by counts per status. When
--db is set every record is appended to the sync log under one run id.

Exit codes:
  0 - Every record is SUCCESS
  1 - At least one record has another status
  2 - Command error (unreadable file, bad registry, etc.)

Examples:
  t0sync batch requests.yaml
  t0sync batch requests.yaml --workers 4 --db ./t0sync.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Workers, "workers", runtime.GOMAXPROCS(0), "maximum concurrent conversions")

	return cmd
}

func runBatch(opts *BatchOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reqs, err := readRequests(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read requests", err)
	}

	reg, err := loadRegistry(ctx, opts.RootOptions)
	if err != nil {
		return err
	}

	eng := tzsync.New(reg, tzsync.WithWorkers(opts.Workers))
	slog.Debug("batch starting", "requests", len(reqs), "workers", opts.Workers)

	recs, err := eng.SynchronizeAll(ctx, reqs)
	if err != nil {
		return WrapExitError(ExitCommandError, "batch interrupted", err)
	}
	for _, rec := range recs {
		logRecord(rec)
	}

	runID := ""
	if opts.Database != "" {
		runID, err = persistRecords(ctx, opts.RootOptions, recs)
		if err != nil {
			return err
		}
	}

	result := BatchResult{
		Records: recs,
		Total:   len(recs),
		Counts:  countStatuses(recs),
	}
	failed := result.Total - result.Counts[tzsync.StatusSuccess]

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result, RunID: runID}
		if failed > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeRecordFailures,
				Message: fmt.Sprintf("%d of %d records did not succeed", failed, result.Total),
			}
		}
		if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	} else {
		writeBatchText(cmd, result, opts.Verbose)
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d records did not succeed", failed, result.Total))
	}
	return nil
}

// readRequests loads a YAML list of requests from path.
func readRequests(path string) ([]tzsync.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var reqs []tzsync.Request
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%s: no requests", path)
	}
	return reqs, nil
}

func writeBatchText(cmd *cobra.Command, result BatchResult, verbose bool) {
	w := cmd.OutOrStdout()

	for _, rec := range result.Records {
		writeRecordText(w, rec, verbose)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d record(s)\n", result.Total)
	for _, st := range tzsync.Statuses {
		if n := result.Counts[st]; n > 0 {
			fmt.Fprintf(w, "  %-33s %d\n", st, n)
		}
	}
}
