package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/t0sync/internal/store"
	"github.com/roach88/t0sync/internal/tzsync"
)

// StatsResult is the JSON payload of the stats command.
type StatsResult struct {
	Total    int64                   `json:"total"`
	ByStatus map[tzsync.Status]int64 `json:"by_status"`
	ByZone   []store.ZoneStat        `json:"by_zone"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the sync log by status and zone",
		Long: `Summarize persisted records: counts per status and, for every
resolved zone, how many conversions succeeded or failed.

Examples:
  t0sync stats --db ./t0sync.db
  t0sync stats --db ./t0sync.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}

	return cmd
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	byStatus, err := st.CountByStatus(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count records", err)
	}
	byZone, err := st.ZoneStats(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compute zone stats", err)
	}

	result := StatsResult{ByStatus: byStatus, ByZone: byZone}
	for _, n := range byStatus {
		result.Total += n
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Records: %d\n\n", result.Total)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tCOUNT")
	for _, s := range tzsync.Statuses {
		fmt.Fprintf(tw, "%s\t%d\n", s, byStatus[s])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(byZone) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ZONE\tTOTAL\tSUCCEEDED\tFAILED")
	for _, z := range byZone {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", z.Zone, z.Total, z.Succeeded, z.Failed)
	}
	return tw.Flush()
}
