package tzsync

import "fmt"

// Status is the terminal outcome of a synchronization.
type Status string

const (
	// StatusSuccess indicates the timestamp was converted to UTC.
	StatusSuccess Status = "SUCCESS"

	// StatusParseFailed indicates the timestamp did not match the wire format.
	StatusParseFailed Status = "PARSE_FAILED"

	// StatusUnknownFacility indicates the facility id is not registered.
	StatusUnknownFacility Status = "UNKNOWN_FACILITY"

	// StatusInvalidLocalTime indicates the wall clock falls in a DST gap.
	StatusInvalidLocalTime Status = "AMBIGUOUS_OR_INVALID_LOCAL_TIME"

	// StatusInternalError indicates an unexpected failure in the zone rules
	// provider or elsewhere.
	StatusInternalError Status = "INTERNAL_ERROR"
)

// Statuses lists every status in a stable order.
var Statuses = []Status{
	StatusSuccess,
	StatusParseFailed,
	StatusUnknownFacility,
	StatusInvalidLocalTime,
	StatusInternalError,
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q: must be one of %v", s, Statuses)
	}
	return st, nil
}
