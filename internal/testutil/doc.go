// Package testutil provides deterministic clocks and run ids for tests that
// persist synchronization records.
package testutil
