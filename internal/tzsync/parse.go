package tzsync

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the only accepted wire format for local timestamps.
const Layout = "2006-01-02 15:04:05"

// WireFormat is Layout spelled for humans.
const WireFormat = "YYYY-MM-DD HH:MM:SS"

// ParseError describes a local timestamp that does not match WireFormat.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse local timestamp %q: %s (expected format %s)", e.Raw, e.Reason, WireFormat)
}

// ParseLocal parses s as a naive wall-clock time in WireFormat.
//
// The result carries time.UTC as a placeholder location; only its calendar
// fields are meaningful. The shape check runs before time.Parse because
// time.Parse tolerates single-digit hours and trailing fractional seconds.
func ParseLocal(s string) (time.Time, error) {
	if len(s) != len(Layout) {
		return time.Time{}, &ParseError{Raw: s, Reason: fmt.Sprintf("expected %d characters, got %d", len(Layout), len(s))}
	}
	for i := 0; i < len(Layout); i++ {
		want := Layout[i]
		c := s[i]
		if isDigit(want) {
			if !isDigit(c) {
				return time.Time{}, &ParseError{Raw: s, Reason: fmt.Sprintf("expected digit at position %d, got %q", i+1, c)}
			}
			continue
		}
		if c != want {
			return time.Time{}, &ParseError{Raw: s, Reason: fmt.Sprintf("expected %q at position %d, got %q", want, i+1, c)}
		}
	}

	t, err := time.Parse(Layout, s)
	if err != nil {
		reason := "does not match layout"
		var pe *time.ParseError
		if errors.As(err, &pe) && pe.Message != "" {
			reason = strings.TrimPrefix(pe.Message, ": ")
		}
		return time.Time{}, &ParseError{Raw: s, Reason: reason}
	}
	return t, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
