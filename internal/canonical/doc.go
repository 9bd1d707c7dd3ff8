// Package canonical provides RFC 8785 canonical JSON and content-addressed
// identifiers for synchronization records.
//
// A record's identity is the SHA-256 of its canonical JSON with a domain
// prefix, so the same inputs always produce the same identifier across
// processes, restarts and replays.
//
// Key design constraints:
//   - Object keys sorted by UTF-16 code units
//   - Strings NFC normalized, no HTML escaping
//   - No floats and no null values
package canonical
