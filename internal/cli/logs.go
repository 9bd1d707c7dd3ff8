package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/t0sync/internal/store"
	"github.com/roach88/t0sync/internal/tzsync"
)

// LogsOptions holds flags for the logs command.
type LogsOptions struct {
	*RootOptions
	Status   string
	Facility string
	Zone     string
	Run      string
	Limit    int
}

// LogsResult is the JSON payload of the logs command.
type LogsResult struct {
	Entries []store.LogEntry `json:"entries"`
	Count   int              `json:"count"`
}

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show persisted synchronization records",
		Long: `Show records from the sync log, newest first.

Examples:
  t0sync logs --db ./t0sync.db
  t0sync logs --db ./t0sync.db --status AMBIGUOUS_OR_INVALID_LOCAL_TIME
  t0sync logs --db ./t0sync.db --facility FAC_002 --limit 20 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "only records with this status")
	cmd.Flags().StringVar(&opts.Facility, "facility", "", "only records for this facility id")
	cmd.Flags().StringVar(&opts.Zone, "zone", "", "only records resolved to this zone")
	cmd.Flags().StringVar(&opts.Run, "run", "", "only records from this run id")
	cmd.Flags().IntVar(&opts.Limit, "limit", store.DefaultLimit, "maximum records to show")

	return cmd
}

func runLogs(opts *LogsOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	filter := store.Filter{
		FacilityID: opts.Facility,
		Zone:       opts.Zone,
		RunID:      opts.Run,
		Limit:      opts.Limit,
	}
	if opts.Status != "" {
		st, err := tzsync.ParseStatus(opts.Status)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --status", err)
		}
		filter.Status = st
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.ReadRecords(ctx, filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read sync log", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data:   LogsResult{Entries: entries, Count: len(entries)},
		})
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "#%d run=%s at=%s\n", e.Seq, e.RunID, e.RecordedAt.Format("2006-01-02T15:04:05Z07:00"))
		writeRecordText(w, e.Record, opts.Verbose)
	}
	return nil
}
