// Package tzsync normalizes facility-local timestamps to canonical UTC (T0).
//
// Engine.Synchronize resolves a facility's IANA zone through a
// FacilityResolver, parses the naive local timestamp, localizes it under the
// zone's rules for that date and emits an immutable Record describing the
// outcome and the offset reasoning behind it.
//
// Per-call state machine:
//
//	START -> ZONE_RESOLVED -> PARSED -> LOCALIZED -> CONVERTED -> SUCCESS
//
// Any non-terminal state may end in a failure status instead
// (UNKNOWN_FACILITY, PARSE_FAILED, AMBIGUOUS_OR_INVALID_LOCAL_TIME,
// INTERNAL_ERROR). Synchronize is total: failures, including recovered
// panics, are captured in the returned Record and never escape the call.
//
// DST policy:
//   - Fold (a wall clock that occurs twice): the first occurrence, i.e. the
//     pre-transition offset, is selected and the record notes it.
//   - Gap (a wall clock that never occurs): AMBIGUOUS_OR_INVALID_LOCAL_TIME,
//     no UTC value.
//
// The engine holds no mutable state, performs no logging and keeps no
// reference to the records it returns; it is safe for concurrent use.
package tzsync
