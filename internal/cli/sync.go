package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/t0sync/internal/tzsync"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	*RootOptions
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync <facility-id> <local-timestamp>",
		Short: "Convert one facility-local timestamp to UTC",
		Long: `Convert a facility-local timestamp to canonical UTC.

The timestamp must be in the form "YYYY-MM-DD HH:MM:SS" and is interpreted
in the facility's registered timezone. When --db is set the resulting
record is appended to the sync log.

Exit codes:
  0 - Record status is SUCCESS
  1 - Record status is anything else (the record is still printed)
  2 - Command error (bad registry file, database not found, etc.)

Examples:
  t0sync sync FAC_001 "2025-10-25 14:30:00"
  t0sync sync FAC_002 "2024-11-03 01:30:00" --format json
  t0sync sync FAC_003 "2025-03-30 01:30:00" --db ./t0sync.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(opts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runSync(opts *SyncOptions, facilityID, localTimestamp string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reg, err := loadRegistry(ctx, opts.RootOptions)
	if err != nil {
		return err
	}

	rec := tzsync.New(reg).Synchronize(facilityID, localTimestamp)
	logRecord(rec)

	runID := ""
	if opts.Database != "" {
		runID, err = persistRecords(ctx, opts.RootOptions, []tzsync.Record{rec})
		if err != nil {
			return err
		}
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: rec, RunID: runID}
		if !rec.OK() {
			resp.Status = "error"
			resp.Error = &CLIError{Code: string(rec.Status), Message: rec.StatusDetail}
		}
		if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	} else {
		writeRecordText(cmd.OutOrStdout(), rec, opts.Verbose)
	}

	if !rec.OK() {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", rec.Status, rec.StatusDetail))
	}
	return nil
}

// logRecord logs one outcome. INTERNAL_ERROR records are logged at error
// level with their full detail.
func logRecord(rec tzsync.Record) {
	if rec.Status == tzsync.StatusInternalError {
		slog.Error("synchronization failed",
			"facility", rec.FacilityID,
			"zone", rec.ResolvedZone,
			"timestamp", rec.LocalTimestampRaw,
			"detail", rec.StatusDetail,
		)
		return
	}
	slog.Debug("synchronized", "facility", rec.FacilityID, "zone", rec.ResolvedZone, "status", rec.Status)
}

// persistRecords appends recs to the sync log under a fresh run id.
func persistRecords(ctx context.Context, opts *RootOptions, recs []tzsync.Record) (string, error) {
	st, err := openStore(opts)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	runID := opts.runID()
	n, err := st.WriteRecords(ctx, runID, opts.now(), recs)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to write sync log", err)
	}
	slog.Info("records persisted", "db", opts.Database, "run_id", runID, "inserted", n)
	return runID, nil
}
