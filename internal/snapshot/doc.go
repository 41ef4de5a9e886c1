// Package snapshot persists flattened device properties to SQLite so
// downstream build tooling can query them without loading and
// traversing the full database.
//
// Each call to Write captures one run: a uuid-identified row in runs
// plus one row per (device, path) leaf in properties, with values
// stored as canonical JSON text. Runs are immutable once written;
// re-snapshotting the same database produces a new run.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package snapshot
