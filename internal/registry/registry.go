package registry

import (
	"fmt"
	"slices"
	"strings"
)

// Entry is the timezone metadata registered for one facility.
//
// NominalOffsetHours is informational only. Conversions must use the IANA
// rules of Zone because DST moves the real offset away from this value.
type Entry struct {
	FacilityID         string  `json:"facility_id" yaml:"facility_id"`
	Zone               string  `json:"zone" yaml:"zone"`
	NominalOffsetHours float64 `json:"nominal_offset_hours" yaml:"nominal_offset_hours"`
	Abbreviation       string  `json:"abbreviation" yaml:"abbreviation"`
	Name               string  `json:"name,omitempty" yaml:"name,omitempty"`
	Location           string  `json:"location,omitempty" yaml:"location,omitempty"`
}

// Registry is an immutable facility id -> Entry table.
type Registry struct {
	entries map[string]Entry
}

// New builds a registry from entries.
// Returns *ValidationError for empty ids, empty zones or duplicate ids.
func New(entries ...Entry) (*Registry, error) {
	m := make(map[string]Entry, len(entries))
	for i, e := range entries {
		e.FacilityID = strings.TrimSpace(e.FacilityID)
		e.Zone = strings.TrimSpace(e.Zone)

		if e.FacilityID == "" {
			return nil, &ValidationError{
				Code:    ErrCodeEmptyFacilityID,
				Message: fmt.Sprintf("entry %d has an empty facility id", i),
			}
		}
		if e.Zone == "" {
			return nil, &ValidationError{
				Code:       ErrCodeEmptyZone,
				Message:    "zone must name an IANA timezone",
				FacilityID: e.FacilityID,
			}
		}
		if _, dup := m[e.FacilityID]; dup {
			return nil, &ValidationError{
				Code:       ErrCodeDuplicateFacility,
				Message:    "facility id registered more than once",
				FacilityID: e.FacilityID,
			}
		}
		m[e.FacilityID] = e
	}
	return &Registry{entries: m}, nil
}

// MustNew is like New but panics on error.
// Use only for static tables known to be valid.
func MustNew(entries ...Entry) *Registry {
	r, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the entry for facilityID.
// Returns *UnknownFacilityError when there is none.
func (r *Registry) Lookup(facilityID string) (Entry, error) {
	e, ok := r.entries[facilityID]
	if !ok {
		return Entry{}, &UnknownFacilityError{FacilityID: facilityID}
	}
	return e, nil
}

// Entries returns all entries ordered by facility id.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(a.FacilityID, b.FacilityID)
	})
	return out
}

// Len returns the number of registered facilities.
func (r *Registry) Len() int {
	return len(r.entries)
}
