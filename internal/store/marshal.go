package store

import (
	"fmt"
	"time"
)

// recordedAtLayout is the TEXT encoding of recorded_at.
// Fixed-width UTC so lexical order matches chronological order.
const recordedAtLayout = "2006-01-02T15:04:05.000000000Z"

func marshalRecordedAt(t time.Time) string {
	return t.UTC().Format(recordedAtLayout)
}

func unmarshalRecordedAt(s string) (time.Time, error) {
	t, err := time.Parse(recordedAtLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse recorded_at %q: %w", s, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
