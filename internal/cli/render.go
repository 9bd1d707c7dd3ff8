package cli

import (
	"fmt"
	"io"

	"github.com/roach88/t0sync/internal/tzsync"
)

// writeRecordText renders one record for humans.
func writeRecordText(w io.Writer, rec tzsync.Record, verbose bool) {
	mark := "✓"
	if !rec.OK() {
		mark = "✗"
	}
	fmt.Fprintf(w, "%s %s %s %q (%s)\n", mark, rec.Status, rec.FacilityID, rec.LocalTimestampRaw, rec.ResolvedZone)

	if rec.OK() {
		fmt.Fprintf(w, "  UTC:       %s\n", rec.CanonicalUTC)
		fmt.Fprintf(w, "  Localized: %s\n", rec.LocalizedTimestamp)
		dst := ""
		if rec.DST {
			dst = ", DST"
		}
		fmt.Fprintf(w, "  Offset:    UTC%s (%s%s)\n", rec.UTCOffset, rec.ZoneAbbreviation, dst)
	}
	if rec.StatusDetail != "" {
		fmt.Fprintf(w, "  Detail:    %s\n", rec.StatusDetail)
	}
	if verbose {
		fmt.Fprintf(w, "  ID:        %s\n", rec.ID)
	}
}

// countStatuses tallies recs by status, with every status present.
func countStatuses(recs []tzsync.Record) map[tzsync.Status]int {
	counts := make(map[tzsync.Status]int, len(tzsync.Statuses))
	for _, st := range tzsync.Statuses {
		counts[st] = 0
	}
	for _, rec := range recs {
		counts[rec.Status]++
	}
	return counts
}
