package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/t0sync/internal/tzsync"
)

// DefaultLimit caps ReadRecords when Filter.Limit is zero.
const DefaultLimit = 500

// LogEntry is a persisted record with the audit fields added by the caller.
type LogEntry struct {
	Seq        int64         `json:"seq"`
	RunID      string        `json:"run_id"`
	RecordedAt time.Time     `json:"recorded_at"`
	Record     tzsync.Record `json:"record"`
}

// Filter narrows ReadRecords. Zero values match everything.
type Filter struct {
	Status     tzsync.Status
	FacilityID string
	Zone       string
	RunID      string
	Limit      int
}

const selectEntryColumns = `
	SELECT seq, run_id, recorded_at, id, facility_id, local_timestamp_raw, resolved_zone,
	       canonical_utc_timestamp, local_timestamp_localized, utc_offset, offset_seconds,
	       zone_abbreviation, dst, disambiguated, status, status_detail
	FROM sync_log
`

// ReadRecords returns log entries matching f, newest first.
func (s *Store) ReadRecords(ctx context.Context, f Filter) ([]LogEntry, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.FacilityID != "" {
		where = append(where, "facility_id = ?")
		args = append(args, f.FacilityID)
	}
	if f.Zone != "" {
		where = append(where, "resolved_zone = ?")
		args = append(args, f.Zone)
	}
	if f.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, f.RunID)
	}

	query := selectEntryColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	query += " ORDER BY seq DESC LIMIT ?"
	args = append(args, limit)

	return s.queryEntries(ctx, query, args...)
}

// ReadAll returns every log entry in insertion order.
// Used by replay to re-derive each record deterministically.
func (s *Store) ReadAll(ctx context.Context) ([]LogEntry, error) {
	return s.queryEntries(ctx, selectEntryColumns+" ORDER BY seq ASC")
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sync log: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync log: %w", err)
	}

	// Return empty slice instead of nil
	if entries == nil {
		entries = []LogEntry{}
	}
	return entries, nil
}

// scanEntry scans a row into a LogEntry.
func scanEntry(rows *sql.Rows) (LogEntry, error) {
	var (
		entry         LogEntry
		recordedAt    string
		status        string
		dst, disambig int
	)
	rec := &entry.Record

	if err := rows.Scan(
		&entry.Seq, &entry.RunID, &recordedAt, &rec.ID, &rec.FacilityID, &rec.LocalTimestampRaw,
		&rec.ResolvedZone, &rec.CanonicalUTC, &rec.LocalizedTimestamp, &rec.UTCOffset,
		&rec.OffsetSeconds, &rec.ZoneAbbreviation, &dst, &disambig, &status, &rec.StatusDetail,
	); err != nil {
		return LogEntry{}, fmt.Errorf("scan sync log row: %w", err)
	}

	t, err := unmarshalRecordedAt(recordedAt)
	if err != nil {
		return LogEntry{}, err
	}
	entry.RecordedAt = t
	rec.DST = dst != 0
	rec.Disambiguated = disambig != 0
	rec.Status = tzsync.Status(status)

	return entry, nil
}
