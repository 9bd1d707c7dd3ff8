package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/t0sync/internal/registry"
	"github.com/roach88/t0sync/internal/tzsync"
)

// FacilityView is a registry entry with the offset its zone observes now.
type FacilityView struct {
	registry.Entry

	// CurrentOffset is the zone's real offset at the command's clock,
	// e.g. "UTC-04:00". Empty when the zone cannot be loaded.
	CurrentOffset       string `json:"current_offset"`
	CurrentAbbreviation string `json:"current_abbreviation,omitempty"`
}

// FacilitiesResult is the JSON payload of the facilities command.
type FacilitiesResult struct {
	Facilities []FacilityView `json:"facilities"`
	Total      int            `json:"total"`
}

// RemoveResult is the JSON payload of the facilities remove command.
type RemoveResult struct {
	Database   string `json:"database"`
	FacilityID string `json:"facility_id"`
	Removed    bool   `json:"removed"`
}

// ImportResult is the JSON payload of the facilities import command.
type ImportResult struct {
	Database string `json:"database"`
	Imported int    `json:"imported"`
}

// NewFacilitiesCommand creates the facilities command and its import subcommand.
func NewFacilitiesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facilities",
		Short: "List registered facilities",
		Long: `List the facility registry: id, IANA zone, nominal offset,
abbreviation and the offset the zone observes right now.

The registry comes from --registry-from-db, --registry, or the built-in
table, in that order.

Examples:
  t0sync facilities
  t0sync facilities --registry ./facilities.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilities(rootOpts, cmd)
		},
	}

	cmd.AddCommand(newFacilitiesImportCommand(rootOpts))
	cmd.AddCommand(newFacilitiesShowCommand(rootOpts))
	cmd.AddCommand(newFacilitiesRemoveCommand(rootOpts))

	return cmd
}

func newFacilitiesImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Store the facility registry in the database",
		Long: `Upsert every facility of the current registry into the database
facility table, so later commands can use --registry-from-db.

Examples:
  t0sync facilities import --db ./t0sync.db
  t0sync facilities import --db ./t0sync.db --registry ./facilities.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilitiesImport(rootOpts, cmd)
		},
	}
}

func newFacilitiesShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <facility-id>",
		Short: "Show one facility",
		Long: `Show a single facility from the current registry.

With --registry-from-db the row is read straight from the database.

Examples:
  t0sync facilities show FAC_001
  t0sync facilities show FAC_200 --db ./t0sync.db --registry-from-db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilitiesShow(rootOpts, cmd, args[0])
		},
	}
}

func newFacilitiesRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <facility-id>",
		Short: "Delete a facility from the database",
		Long: `Delete one facility from the database facility table.
Sync log entries that reference it are kept.

Examples:
  t0sync facilities remove FAC_200 --db ./t0sync.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilitiesRemove(rootOpts, cmd, args[0])
		},
	}
}

func runFacilities(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reg, err := loadRegistry(ctx, opts)
	if err != nil {
		return err
	}

	now := opts.now()
	result := FacilitiesResult{
		Facilities: make([]FacilityView, 0, reg.Len()),
		Total:      reg.Len(),
	}
	for _, e := range reg.Entries() {
		result.Facilities = append(result.Facilities, facilityView(e, now))
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: result})
	}
	return writeFacilityTable(cmd.OutOrStdout(), result.Facilities)
}

func runFacilitiesShow(opts *RootOptions, cmd *cobra.Command, facilityID string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		entry registry.Entry
		err   error
	)
	if opts.RegistryFromDB {
		st, openErr := openStore(opts)
		if openErr != nil {
			return openErr
		}
		defer st.Close()
		entry, err = st.Facility(ctx, facilityID)
	} else {
		reg, loadErr := loadRegistry(ctx, opts)
		if loadErr != nil {
			return loadErr
		}
		entry, err = reg.Lookup(facilityID)
	}
	if registry.IsUnknownFacility(err) {
		return WrapExitError(ExitCommandError, "facility not found", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to look up facility", err)
	}

	view := facilityView(entry, opts.now())
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: view})
	}
	return writeFacilityTable(cmd.OutOrStdout(), []FacilityView{view})
}

func runFacilitiesRemove(opts *RootOptions, cmd *cobra.Command, facilityID string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := st.DeleteFacility(ctx, facilityID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to remove facility", err)
	}
	if !removed {
		return NewExitError(ExitCommandError, fmt.Sprintf("facility %q not found in %s", facilityID, opts.Database))
	}
	slog.Info("facility removed", "db", opts.Database, "facility", facilityID)

	f := opts.formatter(cmd)
	if opts.Format == "json" {
		return f.Success(RemoveResult{Database: opts.Database, FacilityID: facilityID, Removed: true})
	}
	return f.Success(fmt.Sprintf("Removed %s from %s", facilityID, opts.Database))
}

// facilityView resolves the offset e's zone observes at now.
func facilityView(e registry.Entry, now time.Time) FacilityView {
	v := FacilityView{Entry: e}
	loc, err := tzsync.SystemZones{}.Load(e.Zone)
	if err != nil {
		slog.Debug("zone not loadable", "facility", e.FacilityID, "zone", e.Zone, "error", err)
		return v
	}
	abbr, offset := now.In(loc).Zone()
	v.CurrentOffset = "UTC" + tzsync.FormatOffset(offset)
	v.CurrentAbbreviation = abbr
	return v
}

func writeFacilityTable(w io.Writer, views []FacilityView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FACILITY\tZONE\tNOMINAL\tABBR\tCURRENT\tNAME")
	for _, v := range views {
		current := v.CurrentOffset
		if current == "" {
			current = "-"
		} else if v.CurrentAbbreviation != "" {
			current += " " + v.CurrentAbbreviation
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.FacilityID, v.Zone, formatNominal(v.NominalOffsetHours), v.Abbreviation, current, v.Name)
	}
	return tw.Flush()
}

func runFacilitiesImport(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Importing from the database into itself is a no-op.
	if opts.RegistryFromDB {
		return NewExitError(ExitCommandError, "--registry-from-db cannot be combined with facilities import")
	}

	reg, err := loadRegistry(ctx, opts)
	if err != nil {
		return err
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.ImportRegistry(ctx, reg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to import facilities", err)
	}
	slog.Info("facilities imported", "db", opts.Database, "count", n)

	f := opts.formatter(cmd)
	for _, e := range reg.Entries() {
		f.VerboseLog("imported %s (%s)", e.FacilityID, e.Zone)
	}

	if opts.Format == "json" {
		return f.Success(ImportResult{Database: opts.Database, Imported: n})
	}
	return f.Success(fmt.Sprintf("Imported %d facilities into %s", n, opts.Database))
}

// formatNominal renders an hour offset as UTC+05:30 style text.
func formatNominal(hours float64) string {
	sign := "+"
	if hours < 0 {
		sign = "-"
		hours = -hours
	}
	minutes := int(hours*60 + 0.5)
	return fmt.Sprintf("UTC%s%02d:%02d", sign, minutes/60, minutes%60)
}
