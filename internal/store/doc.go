// Package store provides the SQLite-backed polykit workspace.
//
// The workspace holds:
//   - Polynomials: named, content-hashed polynomials
//   - History: an append-only log of evaluated operations
//
// # Ordering
//
// Rows carry a seq INTEGER logical clock. Listings are ordered by name or
// seq, never by timestamps, so two runs over the same inputs produce the same
// listings apart from history IDs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait on lock contention
//   - foreign_keys=ON
package store
