/*
store.go - Persistence interface for period records

PURPOSE:
  Defines the interface between the domain logic and the key-value medium.
  One serialized Record per period key; writes always overwrite the full
  record, never merge.

CONTRACT:
  - Load fails softly: a missing or malformed stored value is reported as
    absent, never as an error, so callers can fall back to fresh-period
    initialization. Nothing partially-typed ever crosses this boundary.
  - Save is a full overwrite. A failed Save is reported but must not crash
    the reconciliation flow; the caller keeps its in-memory state.
  - Save(k, r) followed by Load(k) yields a record semantically equal to r.

IMPLEMENTATIONS:
  - store/memory/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: SQLite-backed production medium
*/
package budget

import "context"

// RecordStore persists one Record per period key.
type RecordStore interface {
	// Load returns the record stored under key. The second result is false
	// when the key is unset or the stored value is malformed; err is
	// reserved for medium-level failures (I/O), not data shape problems.
	Load(ctx context.Context, key string) (*Record, bool, error)

	// Save serializes the full record and overwrites any prior value at
	// key.
	Save(ctx context.Context, key string, record Record) error
}
