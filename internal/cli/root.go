package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Environment fallbacks for flags left empty.
const (
	EnvDatabase = "T0SYNC_DB"
	EnvRegistry = "T0SYNC_REGISTRY"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose        bool
	Format         string // "json" | "text"
	Registry       string // facility file (YAML or CUE); empty uses the built-in table
	Database       string // SQLite sync log
	RegistryFromDB bool   // load facilities from the database instead of a file

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs RunIDGenerator

	// Now allows overriding the audit clock (for testing).
	// If nil, defaults to time.Now.
	Now func() time.Time
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the t0sync CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "t0sync",
		Short: "t0sync - facility time synchronization",
		Long: `Convert facility-local timestamps into canonical UTC records.

Each facility is registered against an IANA timezone. Timestamps are
interpreted in that zone with full daylight-saving awareness, and every
conversion produces a content-addressed synchronization record that can be
appended to a SQLite sync log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.applyEnv()
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Registry, "registry", "", "facility registry file, YAML or CUE (env "+EnvRegistry+")")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite sync log (env "+EnvDatabase+")")
	cmd.PersistentFlags().BoolVar(&opts.RegistryFromDB, "registry-from-db", false, "load facilities from the database facility table")

	// Add subcommands
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewFacilitiesCommand(opts))
	cmd.AddCommand(NewLogsCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// applyEnv fills empty flags from the environment.
func (o *RootOptions) applyEnv() {
	if o.Database == "" {
		o.Database = os.Getenv(EnvDatabase)
	}
	if o.Registry == "" {
		o.Registry = os.Getenv(EnvRegistry)
	}
}

// setupLogging installs a text slog handler on w.
// Debug level with --verbose, Info otherwise.
func setupLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) runID() string {
	if o.RunIDs == nil {
		return UUIDv7Generator{}.Generate()
	}
	return o.RunIDs.Generate()
}

func (o *RootOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
