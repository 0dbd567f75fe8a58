/*
Package sqlite provides the SQLite-backed RecordStore.

PURPOSE:
  Implements budget.RecordStore on a local SQLite file: one row per period
  key holding the JSON-serialized record. This is the persistent key-value
  medium for a single-device tracker.

KEY TABLE:
  period_records:
    key         TEXT PRIMARY KEY   canonical period key (week-.../month-...)
    record      TEXT NOT NULL      JSON-serialized budget.Record
    updated_at  TEXT NOT NULL      RFC3339 write timestamp

OVERWRITE SEMANTICS:
  Save is an UPSERT - writing a key always replaces the previous record in
  full. There are no partial or merge writes.

SOFT-FAIL LOADS:
  A stored value that fails to unmarshal is treated as absent (logged at
  warn level), so the caller falls back to fresh-period initialization
  instead of crashing on corrupt data.

WAL MODE:
  The database is opened with WAL journaling. Use ":memory:" for tests.

SEE ALSO:
  - store.go (package budget): interface contract
  - store/memory/memory.go: in-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/alanrss/budget"
)

// Store implements budget.RecordStore using SQLite.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS period_records (
		key        TEXT PRIMARY KEY,
		record     TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the record stored under key, or absent when the key is unset
// or the stored value does not parse into a fully-typed record.
func (s *Store) Load(ctx context.Context, key string) (*budget.Record, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM period_records WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load record %q: %w", key, err)
	}

	var rec budget.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("stored record is malformed, treating as absent")
		return nil, false, nil
	}
	if !rec.WellFormed() {
		s.log.Warn().Str("key", key).Msg("stored record has an unexpected shape, treating as absent")
		return nil, false, nil
	}
	return &rec, true, nil
}

// Save overwrites the record stored under key with the full serialized
// record.
func (s *Store) Save(ctx context.Context, key string, record budget.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %v", budget.ErrSaveFailed, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO period_records (key, record, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			record = excluded.record,
			updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: %v", budget.ErrSaveFailed, err)
	}
	return nil
}

// Keys returns every stored period key, newest write first. Used by the
// demo scenario listing.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM period_records ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Reset drops every stored record. Demo/dev only.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM period_records`)
	return err
}
