package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/t0sync/internal/tzsync"
)

// ReplayMismatch describes one log entry whose record could not be
// reproduced.
type ReplayMismatch struct {
	Seq        int64         `json:"seq"`
	RunID      string        `json:"run_id"`
	FacilityID string        `json:"facility_id"`
	StoredID   string        `json:"stored_id"`
	ReplayedID string        `json:"replayed_id"`
	Reason     string        `json:"reason"`
	Replayed   tzsync.Record `json:"replayed"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Total            int              `json:"total"`
	Matched          int              `json:"matched"`
	Mismatches       []ReplayMismatch `json:"mismatches"`
	AllDeterministic bool             `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-synchronize the sync log and verify determinism",
		Long: `Re-run every logged conversion and verify it reproduces the stored record.

Each entry's facility id and raw timestamp are synchronized again against
the current registry. The entry matches when the stored record id is intact
and equals the id of the regenerated record. A mismatch means the stored
row was altered, the registry changed, or the zone rules changed since the
record was written.

Exit codes:
  0 - Every record reproduced
  1 - At least one mismatch
  2 - Command error (database not found, etc.)

Examples:
  t0sync replay --db ./t0sync.db
  t0sync replay --db ./t0sync.db --registry-from-db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.ReadAll(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read sync log", err)
	}

	reg, err := loadRegistry(ctx, opts)
	if err != nil {
		return err
	}
	eng := tzsync.New(reg)

	result := ReplayResult{
		Total:            len(entries),
		Mismatches:       []ReplayMismatch{},
		AllDeterministic: true,
	}

	for _, e := range entries {
		stored := e.Record
		replayed := eng.Synchronize(stored.FacilityID, stored.LocalTimestampRaw)

		reason := ""
		if id, err := stored.ComputeID(); err != nil || id != stored.ID {
			reason = "stored record does not hash to its id"
		} else if replayed.ID != stored.ID {
			reason = "regenerated record differs"
		}

		if reason == "" {
			result.Matched++
			continue
		}
		result.AllDeterministic = false
		result.Mismatches = append(result.Mismatches, ReplayMismatch{
			Seq:        e.Seq,
			RunID:      e.RunID,
			FacilityID: stored.FacilityID,
			StoredID:   stored.ID,
			ReplayedID: replayed.ID,
			Reason:     reason,
			Replayed:   replayed,
		})
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeDeterminism,
			Message: "determinism verification failed",
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		// Determinism failure = exit code 1
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if result.Total == 0 {
		fmt.Fprintln(w, "No records found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d record(s), %d reproduced\n", result.Total, result.Matched)

	for _, m := range result.Mismatches {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "✗ #%d %s %q (run %s)\n", m.Seq, m.FacilityID, m.Replayed.LocalTimestampRaw, m.RunID)
		fmt.Fprintf(w, "  Reason:   %s\n", m.Reason)
		fmt.Fprintf(w, "  Stored:   %s\n", m.StoredID)
		fmt.Fprintf(w, "  Replayed: %s\n", m.ReplayedID)
		if verbose {
			writeRecordText(w, m.Replayed, verbose)
		}
	}

	fmt.Fprintln(w)
	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All records verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	// Determinism failure = exit code 1
	return NewExitError(ExitFailure, "determinism verification failed")
}
