package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/t0sync/internal/registry"
)

const upsertFacilitySQL = `
	INSERT INTO facilities
	(facility_id, zone, nominal_offset_hours, abbreviation, name, location)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(facility_id) DO UPDATE SET
		zone = excluded.zone,
		nominal_offset_hours = excluded.nominal_offset_hours,
		abbreviation = excluded.abbreviation,
		name = excluded.name,
		location = excluded.location
`

// UpsertFacility inserts or replaces the facility row for e.FacilityID.
func (s *Store) UpsertFacility(ctx context.Context, e registry.Entry) error {
	return upsertFacility(ctx, s.db, e)
}

// ImportRegistry upserts every entry of reg in a single transaction.
func (s *Store) ImportRegistry(ctx context.Context, reg *registry.Registry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import registry: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	n := 0
	for _, e := range reg.Entries() {
		if err := upsertFacility(ctx, tx, e); err != nil {
			return 0, fmt.Errorf("import registry: %w", err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import registry: commit: %w", err)
	}
	return n, nil
}

func upsertFacility(ctx context.Context, db execer, e registry.Entry) error {
	if e.FacilityID == "" {
		return fmt.Errorf("upsert facility: empty facility id")
	}

	_, err := db.ExecContext(ctx, upsertFacilitySQL,
		e.FacilityID,
		e.Zone,
		e.NominalOffsetHours,
		e.Abbreviation,
		e.Name,
		e.Location,
	)
	if err != nil {
		return fmt.Errorf("upsert facility %q: %w", e.FacilityID, err)
	}
	return nil
}

// Facility returns the row for facilityID.
// A missing row yields a *registry.UnknownFacilityError.
func (s *Store) Facility(ctx context.Context, facilityID string) (registry.Entry, error) {
	var e registry.Entry
	err := s.db.QueryRowContext(ctx, `
		SELECT facility_id, zone, nominal_offset_hours, abbreviation, name, location
		FROM facilities
		WHERE facility_id = ?
	`, facilityID).Scan(&e.FacilityID, &e.Zone, &e.NominalOffsetHours, &e.Abbreviation, &e.Name, &e.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return registry.Entry{}, &registry.UnknownFacilityError{FacilityID: facilityID}
	}
	if err != nil {
		return registry.Entry{}, fmt.Errorf("query facility %q: %w", facilityID, err)
	}
	return e, nil
}

// DeleteFacility removes the row for facilityID and reports whether one existed.
// Sync log entries that reference the facility are kept.
func (s *Store) DeleteFacility(ctx context.Context, facilityID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM facilities WHERE facility_id = ?`, facilityID)
	if err != nil {
		return false, fmt.Errorf("delete facility %q: %w", facilityID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete facility %q: rows affected: %w", facilityID, err)
	}
	return rows > 0, nil
}

// Facilities returns every facility row ordered by facility id.
func (s *Store) Facilities(ctx context.Context) ([]registry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT facility_id, zone, nominal_offset_hours, abbreviation, name, location
		FROM facilities
		ORDER BY facility_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query facilities: %w", err)
	}
	defer rows.Close()

	entries := []registry.Entry{}
	for rows.Next() {
		var e registry.Entry
		if err := rows.Scan(&e.FacilityID, &e.Zone, &e.NominalOffsetHours, &e.Abbreviation, &e.Name, &e.Location); err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facilities: %w", err)
	}
	return entries, nil
}

// Registry builds a registry from the facility table.
func (s *Store) Registry(ctx context.Context) (*registry.Registry, error) {
	entries, err := s.Facilities(ctx)
	if err != nil {
		return nil, err
	}
	return registry.New(entries...)
}
