package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/t0sync/internal/registry"
	"github.com/roach88/t0sync/internal/store"
)

// loadRegistry resolves the facility registry for a command.
//
// Precedence: --registry-from-db, then --registry (or T0SYNC_REGISTRY),
// then the built-in facility table.
func loadRegistry(ctx context.Context, opts *RootOptions) (*registry.Registry, error) {
	if opts.RegistryFromDB {
		st, err := openStore(opts)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		reg, err := st.Registry(ctx)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load facilities from database", err)
		}
		if reg.Len() == 0 {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("no facilities in %s: run 't0sync facilities import' first", opts.Database))
		}
		slog.Debug("registry loaded", "source", opts.Database, "facilities", reg.Len())
		return reg, nil
	}

	if opts.Registry != "" {
		reg, err := registry.LoadFile(opts.Registry)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load facility registry", err)
		}
		slog.Debug("registry loaded", "source", opts.Registry, "facilities", reg.Len())
		return reg, nil
	}

	return registry.Default(), nil
}

// openStore opens the sync log named by --db (or T0SYNC_DB).
func openStore(opts *RootOptions) (*store.Store, error) {
	if opts.Database == "" {
		return nil, NewExitError(ExitCommandError, "--db is required (or set "+EnvDatabase+")")
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
