// Package store provides SQLite-backed durable storage for synchronization
// records and the facility table.
//
// The store is a collaborator of the synchronization engine: the engine
// returns records, and callers decide whether to persist them here.
//
// Tables:
//   - sync_log: append-only synchronization records, one row per record per run
//   - facilities: facility timezone table that can populate a registry
//
// # Idempotency
//
//   - UNIQUE(id, run_id) on sync_log: re-writing the same record in the same
//     run is a no-op. Record ids are content-addressed, so the same input
//     synchronized in two runs yields two rows sharing one id.
//
// # Ordering
//
//   - sync_log.seq is the insertion order. Replay reads ORDER BY seq ASC;
//     listings read newest first.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
