package tzsync

import (
	"encoding/hex"
	"time"

	"github.com/roach88/t0sync/internal/canonical"
)

// UnresolvedZone is the ResolvedZone sentinel when facility lookup failed.
const UnresolvedZone = "unresolved"

// LocalizedLayout renders an instant with its explicit UTC offset.
const LocalizedLayout = "2006-01-02T15:04:05-07:00"

// Record is the outcome of one synchronization: the engine's only output
// and the log entry handed to persistence and presentation layers.
//
// Records are returned by value and never retained by the engine.
// CanonicalUTC and LocalizedTimestamp are set only when Status is
// StatusSuccess; StatusDetail is always set otherwise.
type Record struct {
	// ID is the content-addressed identity of all other fields.
	ID string `json:"id"`

	FacilityID        string `json:"facility_id"`
	LocalTimestampRaw string `json:"local_timestamp_raw"`
	ResolvedZone      string `json:"resolved_zone"`

	// CanonicalUTC is the naive UTC instant in Layout.
	CanonicalUTC string `json:"canonical_utc_timestamp,omitempty"`

	// LocalizedTimestamp is the instant in LocalizedLayout.
	LocalizedTimestamp string `json:"local_timestamp_localized,omitempty"`

	// Offset reasoning, set on success.
	UTCOffset        string `json:"utc_offset,omitempty"`
	OffsetSeconds    int    `json:"offset_seconds"`
	ZoneAbbreviation string `json:"zone_abbreviation,omitempty"`
	DST              bool   `json:"dst"`
	Disambiguated    bool   `json:"disambiguated"`

	Status       Status `json:"status"`
	StatusDetail string `json:"status_detail,omitempty"`
}

// OK reports whether the record describes a successful conversion.
func (r Record) OK() bool {
	return r.Status == StatusSuccess
}

// UTC returns the canonical instant as a time.Time in UTC.
// The boolean is false when the record carries no UTC value.
func (r Record) UTC() (time.Time, bool) {
	if r.CanonicalUTC == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(Layout, r.CanonicalUTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Fields returns every field except ID as a canonical-JSON-ready map.
// Absent values are encoded as empty strings, never null.
//
// The raw timestamp is hex-encoded so the identity covers the submitted
// bytes exactly, before any Unicode normalization or UTF-8 replacement.
func (r Record) Fields() map[string]any {
	return map[string]any{
		"facility_id":               r.FacilityID,
		"local_timestamp_raw":       hex.EncodeToString([]byte(r.LocalTimestampRaw)),
		"resolved_zone":             r.ResolvedZone,
		"canonical_utc_timestamp":   r.CanonicalUTC,
		"local_timestamp_localized": r.LocalizedTimestamp,
		"utc_offset":                r.UTCOffset,
		"offset_seconds":            r.OffsetSeconds,
		"zone_abbreviation":         r.ZoneAbbreviation,
		"dst":                       r.DST,
		"disambiguated":             r.Disambiguated,
		"status":                    string(r.Status),
		"status_detail":             r.StatusDetail,
	}
}

// ComputeID returns the content-addressed identity of r's fields.
func (r Record) ComputeID() (string, error) {
	return canonical.RecordID(r.Fields())
}

// seal stamps the record with its identity.
func seal(r Record) Record {
	id, err := r.ComputeID()
	if err != nil {
		// Fields holds only strings, ints and bools; this cannot fail.
		id = ""
	}
	r.ID = id
	return r
}

// fail turns a partially built record into a terminal failure.
func fail(r Record, status Status, detail string) Record {
	r.CanonicalUTC = ""
	r.LocalizedTimestamp = ""
	r.UTCOffset = ""
	r.OffsetSeconds = 0
	r.ZoneAbbreviation = ""
	r.DST = false
	r.Disambiguated = false
	r.Status = status
	r.StatusDetail = detail
	return seal(r)
}
