// Package store provides key-value storage for presence records.
//
// This package is internal to presence and holds the two logical records the
// endpoint needs: the shared secret and the last published status. Records are
// addressed by hierarchical [Key] values and stored as opaque byte slices; the
// caller owns the encoding.
//
// The main components are:
//
//   - [Store]: Interface defining atomic single-key get/set
//   - [SQLiteStore]: Durable implementation backed by SQLite
//   - [MemoryStore]: In-process implementation for tests and ephemeral runs
//
// There are no cross-key transactions. Each Set replaces the previous value for
// its key in a single statement, so concurrent writers never produce a merged
// value: the last committed write wins.
package store
