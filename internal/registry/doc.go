// Package registry maps facility identifiers to IANA timezone metadata.
//
// A Registry is built once (from the built-in table, a facility file, or
// rows loaded by a collaborator such as the sync log store) and is read-only
// afterwards, so it is safe for concurrent use without locking.
//
// Lookups never fall back to a default zone: an identifier that is not in
// the table fails with *UnknownFacilityError.
//
// Facility files are YAML or CUE and are validated against the embedded
// CUE schema in schema.cue before any entry is accepted.
package registry
