package tzsync

import (
	"time"

	// Embed the IANA database so conversions never depend on the host's
	// zoneinfo installation.
	_ "time/tzdata"
)

// ZoneProvider supplies IANA zone rules by name.
type ZoneProvider interface {
	Load(name string) (*time.Location, error)
}

// SystemZones loads zones with time.LoadLocation.
type SystemZones struct{}

// Load implements ZoneProvider.
func (SystemZones) Load(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

// ZoneProviderFunc adapts a function to ZoneProvider.
type ZoneProviderFunc func(name string) (*time.Location, error)

// Load implements ZoneProvider.
func (f ZoneProviderFunc) Load(name string) (*time.Location, error) {
	return f(name)
}
