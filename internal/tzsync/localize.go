package tzsync

import (
	"fmt"
	"slices"
	"time"
)

// Localized is a wall clock resolved to a single instant in a zone.
type Localized struct {
	// Instant is the resolved time, located in the zone.
	Instant time.Time

	// Offset is the zone's UTC offset in seconds at Instant.
	Offset int

	// Abbreviation is the zone abbreviation at Instant (e.g. "EDT").
	Abbreviation string

	// DST reports whether daylight saving time is in effect at Instant.
	DST bool

	// Folded is set when the wall clock occurs twice. Instant is then the
	// first occurrence and Later the second.
	Folded bool
	Later  time.Time
}

// GapError reports a wall clock skipped by a forward transition.
type GapError struct {
	Zone string
	Wall time.Time

	// Transition is the instant the offset changed; zero if unknown.
	Transition   time.Time
	OffsetBefore int
	OffsetAfter  int
}

func (e *GapError) Error() string {
	msg := fmt.Sprintf("local time %s does not exist in %s", e.Wall.Format(Layout), e.Zone)
	if e.Transition.IsZero() {
		return msg + ": it falls in a daylight-saving gap"
	}
	gapStart := e.Transition.In(time.FixedZone("", e.OffsetBefore))
	gapEnd := e.Transition.In(time.FixedZone("", e.OffsetAfter))
	return fmt.Sprintf("%s: clocks moved forward from %s to %s on %s (UTC%s -> UTC%s)",
		msg,
		gapStart.Format("15:04:05"),
		gapEnd.Format("15:04:05"),
		gapStart.Format("2006-01-02"),
		FormatOffset(e.OffsetBefore),
		FormatOffset(e.OffsetAfter),
	)
}

// Localize attaches loc's rules to the naive wall clock.
//
// Every offset the zone uses within a day of the wall clock is tried; an
// offset is valid when the instant it yields maps back to the same wall
// clock. One valid instant is the normal case. Two mean a fold, and the
// earlier instant (the first occurrence) wins. None means a gap and a
// *GapError is returned.
func Localize(loc *time.Location, wall time.Time) (Localized, error) {
	if loc == nil {
		return Localized{}, fmt.Errorf("localize: nil location")
	}

	naive := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, time.UTC)
	w := naive.Unix()

	var offsets []int
	for _, probe := range []int64{w - 86400, w, w + 86400} {
		_, off := time.Unix(probe, 0).In(loc).Zone()
		if !slices.Contains(offsets, off) {
			offsets = append(offsets, off)
		}
	}

	var candidates []time.Time
	for _, off := range offsets {
		t := time.Unix(w-int64(off), 0).In(loc)
		if _, got := t.Zone(); got != off {
			continue
		}
		if !slices.ContainsFunc(candidates, t.Equal) {
			candidates = append(candidates, t)
		}
	}
	slices.SortFunc(candidates, func(a, b time.Time) int { return a.Compare(b) })

	if len(candidates) == 0 {
		return Localized{}, gapError(loc, naive, w)
	}

	first := candidates[0]
	abbr, off := first.Zone()
	res := Localized{
		Instant:      first,
		Offset:       off,
		Abbreviation: abbr,
		DST:          first.IsDST(),
	}
	if len(candidates) > 1 {
		res.Folded = true
		res.Later = candidates[1]
	}
	return res, nil
}

// gapError locates the forward transition that skipped the wall clock.
func gapError(loc *time.Location, naive time.Time, w int64) *GapError {
	_, before := time.Unix(w-86400, 0).In(loc).Zone()

	// Reading the wall clock with the old offset lands past the transition.
	after := time.Unix(w-int64(before), 0).In(loc)
	_, afterOff := after.Zone()
	start, _ := after.ZoneBounds()

	return &GapError{
		Zone:         loc.String(),
		Wall:         naive,
		Transition:   start,
		OffsetBefore: before,
		OffsetAfter:  afterOff,
	}
}

// FormatOffset renders an offset in seconds as "+05:30" or "-04:00".
func FormatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
