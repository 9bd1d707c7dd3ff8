package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/t0sync/internal/tzsync"
)

const insertRecordSQL = `
	INSERT INTO sync_log
	(id, run_id, recorded_at, facility_id, local_timestamp_raw, resolved_zone,
	 canonical_utc_timestamp, local_timestamp_localized, utc_offset, offset_seconds,
	 zone_abbreviation, dst, disambiguated, status, status_detail)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id, run_id) DO NOTHING
`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WriteRecord appends rec to the sync log under runID.
// Uses ON CONFLICT(id, run_id) DO NOTHING for idempotency; inserted is false
// when the record was already logged for this run.
//
// recordedAt is the collaborator's audit stamp and is not part of the
// record's identity.
func (s *Store) WriteRecord(ctx context.Context, runID string, recordedAt time.Time, rec tzsync.Record) (inserted bool, err error) {
	return writeRecord(ctx, s.db, runID, recordedAt, rec)
}

// WriteRecords appends recs under runID in a single transaction and returns
// how many rows were inserted.
func (s *Store) WriteRecords(ctx context.Context, runID string, recordedAt time.Time, recs []tzsync.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write records: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	n := 0
	for _, rec := range recs {
		inserted, err := writeRecord(ctx, tx, runID, recordedAt, rec)
		if err != nil {
			return 0, err
		}
		if inserted {
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write records: commit: %w", err)
	}
	return n, nil
}

func writeRecord(ctx context.Context, db execer, runID string, recordedAt time.Time, rec tzsync.Record) (bool, error) {
	if runID == "" {
		return false, fmt.Errorf("write record: empty run id")
	}
	if rec.ID == "" {
		return false, fmt.Errorf("write record: record has no id")
	}
	if !rec.Status.Valid() {
		return false, fmt.Errorf("write record: invalid status %q", rec.Status)
	}

	result, err := db.ExecContext(ctx, insertRecordSQL,
		rec.ID,
		runID,
		marshalRecordedAt(recordedAt),
		rec.FacilityID,
		rec.LocalTimestampRaw,
		rec.ResolvedZone,
		rec.CanonicalUTC,
		rec.LocalizedTimestamp,
		rec.UTCOffset,
		rec.OffsetSeconds,
		rec.ZoneAbbreviation,
		boolToInt(rec.DST),
		boolToInt(rec.Disambiguated),
		string(rec.Status),
		rec.StatusDetail,
	)
	if err != nil {
		return false, fmt.Errorf("write record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write record: rows affected: %w", err)
	}
	return rows > 0, nil
}
