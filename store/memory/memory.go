// Package memory provides an in-memory RecordStore.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/alanrss/budget"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps serialized records in a map. Values go through JSON just
// like the SQLite store, so shape problems surface the same way in tests.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte

	// FailSaves makes every Save return a wrapped budget.ErrSaveFailed.
	// Used by tests exercising the non-fatal write-failure path.
	FailSaves bool
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) (*budget.Record, bool, error) {
	m.mu.RLock()
	raw, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	var rec budget.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Malformed is absent, not an error.
		return nil, false, nil
	}
	if !rec.WellFormed() {
		// Valid JSON of the wrong shape is just as absent.
		return nil, false, nil
	}
	return &rec, true, nil
}

func (m *Memory) Save(_ context.Context, key string, record budget.Record) error {
	if m.FailSaves {
		return budget.ErrSaveFailed
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records[key] = raw
	m.mu.Unlock()
	return nil
}

// Corrupt overwrites the value at key with unparseable bytes. Test hook for
// the malformed-record-is-absent contract.
func (m *Memory) Corrupt(key string) {
	m.Seed(key, []byte("{not json"))
}

// Seed stores raw bytes at key verbatim, bypassing serialization. Test hook
// for exercising stored values of the wrong shape.
func (m *Memory) Seed(key string, raw []byte) {
	m.mu.Lock()
	m.records[key] = raw
	m.mu.Unlock()
}

// Keys returns every stored period key. Test helper.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	return keys
}
