package store

import (
	"context"
	"fmt"

	"github.com/roach88/t0sync/internal/tzsync"
)

// ZoneStat summarizes logged records for one resolved zone.
type ZoneStat struct {
	Zone      string `json:"zone"`
	Total     int64  `json:"total"`
	Succeeded int64  `json:"succeeded"`
	Failed    int64  `json:"failed"`
}

// CountByStatus returns the number of logged records per status.
// Statuses with no records are present with a zero count.
func (s *Store) CountByStatus(ctx context.Context) (map[tzsync.Status]int64, error) {
	counts := make(map[tzsync.Status]int64, len(tzsync.Statuses))
	for _, st := range tzsync.Statuses {
		counts[st] = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM sync_log
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("count by status: scan: %w", err)
		}
		counts[tzsync.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by status: iterate: %w", err)
	}
	return counts, nil
}

// ZoneStats returns per-zone record counts ordered by zone name.
// Records whose facility never resolved are grouped under
// tzsync.UnresolvedZone.
func (s *Store) ZoneStats(ctx context.Context) ([]ZoneStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT resolved_zone,
		       COUNT(*),
		       SUM(CASE WHEN status = ? THEN 1 ELSE 0 END)
		FROM sync_log
		GROUP BY resolved_zone
		ORDER BY resolved_zone COLLATE BINARY ASC
	`, string(tzsync.StatusSuccess))
	if err != nil {
		return nil, fmt.Errorf("zone stats: %w", err)
	}
	defer rows.Close()

	stats := []ZoneStat{}
	for rows.Next() {
		var st ZoneStat
		if err := rows.Scan(&st.Zone, &st.Total, &st.Succeeded); err != nil {
			return nil, fmt.Errorf("zone stats: scan: %w", err)
		}
		st.Failed = st.Total - st.Succeeded
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("zone stats: iterate: %w", err)
	}
	return stats, nil
}
