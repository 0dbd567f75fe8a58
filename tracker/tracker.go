/*
Package tracker orchestrates the active budget period: it owns the mapping
from the current period key to the one record being edited, and it is the
only component that writes to the record store.

RECONCILIATION FLOW:
  Every entry or scalar mutation runs the same synchronous sequence:
    1. apply the operation to the ledger (or the record's scalar field)
    2. recompute metrics from the current entry set
    3. persist the full record under the active key
  There is no batched or delayed write and no separate "save" action.

PERIOD CHANGES:
  Selecting a period derives the new key, then loads the stored record or
  initializes a fresh one. Nothing is flushed first - the previous period
  was already persisted by its last mutation. The ledger is rebuilt from
  scratch; entries are never migrated across a period change.

FAILURE SEMANTICS:
  A failed save is logged and surfaced through State.SaveFailed, never as
  an operation error. In-memory state stays authoritative for the session,
  and the next mutation retries by virtue of being a full-record write.
*/
package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alanrss/budget"
	"github.com/alanrss/budget/period"
	"github.com/alanrss/budget/transfer"
)

// ErrNoActivePeriod is returned when a mutation arrives before the first
// SelectPeriod call.
var ErrNoActivePeriod = errors.New("no active period selected")

// State is the read-only snapshot handed to the presentation layer after
// every operation: the active record, its derived metrics, and the
// period-shaped display data.
type State struct {
	Key        string
	Record     budget.Record
	Metrics    budget.Metrics
	Label      string
	DayChoices []time.Time
	SaveFailed bool
}

// Tracker is the reconciliation controller. All public operations are
// serialized by a mutex: each one runs to completion, persistence write
// included, before the next is admitted.
type Tracker struct {
	mu    sync.Mutex
	store budget.RecordStore
	log   zerolog.Logger

	key    string
	record budget.Record
	ledger *budget.Ledger

	saveFailed bool
}

// New creates a tracker with no active period. Call SelectPeriod before
// any mutation.
func New(store budget.RecordStore, log zerolog.Logger) *Tracker {
	return &Tracker{store: store, log: log}
}

// SelectPeriod derives the key for (date, typ), then loads the stored
// record under it or initializes a fresh one. A loaded record with zero
// entries is re-materialized with one blank editable row.
func (t *Tracker) SelectPeriod(ctx context.Context, date time.Time, typ period.Type) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := period.Key(date, typ)
	rec, ok, err := t.store.Load(ctx, key)
	if err != nil {
		return State{}, err
	}

	if ok {
		t.record = rec.Clone()
	} else {
		t.record = budget.NewRecord(date, typ)
	}
	t.key = key
	t.ledger = budget.NewLedger(t.record.Period(), t.record.Entries)
	t.saveFailed = false

	t.log.Debug().Str("key", key).Bool("existing", ok).Msg("period selected")
	return t.stateLocked(), nil
}

// AppendEntry adds an entry to the active ledger and persists.
func (t *Tracker) AppendEntry(ctx context.Context, e budget.Entry) (State, error) {
	return t.mutate(ctx, func() error {
		t.ledger.Append(e)
		return nil
	})
}

// UpdateEntry applies a partial update to the row at index i and persists.
func (t *Tracker) UpdateEntry(ctx context.Context, i int, p budget.Patch) (State, error) {
	return t.mutate(ctx, func() error {
		return t.ledger.UpdateAt(i, p)
	})
}

// RemoveEntry deletes the row at index i and persists.
func (t *Tracker) RemoveEntry(ctx context.Context, i int) (State, error) {
	return t.mutate(ctx, func() error {
		return t.ledger.RemoveAt(i)
	})
}

// ReplaceEntries swaps the whole entry set (the import path) and persists.
func (t *Tracker) ReplaceEntries(ctx context.Context, entries []budget.Entry) (State, error) {
	return t.mutate(ctx, func() error {
		t.ledger.Replace(entries)
		return nil
	})
}

// ClearPeriod removes every entry and persists the resulting zero-entry
// record. The next load of this period re-materializes one blank row.
func (t *Tracker) ClearPeriod(ctx context.Context) (State, error) {
	return t.mutate(ctx, func() error {
		t.ledger.Replace(nil)
		return nil
	})
}

// SetBudget updates the period budget (clamped non-negative) and persists.
func (t *Tracker) SetBudget(ctx context.Context, b decimal.Decimal) (State, error) {
	return t.mutate(ctx, func() error {
		t.record.Budget = budget.ClampAmount(b)
		return nil
	})
}

// SetCurrency updates the period currency and persists. Blank input falls
// back to the default currency.
func (t *Tracker) SetCurrency(ctx context.Context, currency string) (State, error) {
	return t.mutate(ctx, func() error {
		currency = strings.ToUpper(strings.TrimSpace(currency))
		if currency == "" {
			currency = budget.DefaultCurrency
		}
		t.record.Currency = currency
		return nil
	})
}

// SetNote updates the period note and persists.
func (t *Tracker) SetNote(ctx context.Context, note string) (State, error) {
	return t.mutate(ctx, func() error {
		t.record.Note = note
		return nil
	})
}

// ImportCSV decodes delimited text and replaces the active entry set.
func (t *Tracker) ImportCSV(ctx context.Context, text string) (State, error) {
	return t.ReplaceEntries(ctx, transfer.Decode(text))
}

// ExportCSV renders the active entry set as delimited text plus the
// key-derived filename.
func (t *Tracker) ExportCSV() (filename, text string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ledger == nil {
		return "", "", ErrNoActivePeriod
	}
	return transfer.Filename(t.key), transfer.Encode(t.ledger.Snapshot()), nil
}

// State returns the current snapshot without mutating anything.
func (t *Tracker) State() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ledger == nil {
		return State{}, ErrNoActivePeriod
	}
	return t.stateLocked(), nil
}

// mutate runs op, then reconciles: ledger snapshot into the record, full
// record written under the active key. Save failures are non-fatal.
func (t *Tracker) mutate(ctx context.Context, op func() error) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ledger == nil {
		return State{}, ErrNoActivePeriod
	}
	if err := op(); err != nil {
		return State{}, err
	}
	t.persistLocked(ctx)
	return t.stateLocked(), nil
}

func (t *Tracker) persistLocked(ctx context.Context) {
	t.record.Entries = t.ledger.Snapshot()
	if err := t.store.Save(ctx, t.key, t.record); err != nil {
		t.saveFailed = true
		t.log.Warn().Str("key", t.key).Err(err).Msg("period save failed, in-memory state remains authoritative")
		return
	}
	t.saveFailed = false
}

func (t *Tracker) stateLocked() State {
	p := t.record.Period()
	rec := t.record.Clone()
	rec.Entries = t.ledger.Snapshot()
	return State{
		Key:        t.key,
		Record:     rec,
		Metrics:    budget.ComputeMetrics(rec.Entries, rec.Budget),
		Label:      p.Label(),
		DayChoices: p.Days(),
		SaveFailed: t.saveFailed,
	}
}
