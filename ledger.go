/*
ledger.go - The live, ordered entry collection for the active period

PURPOSE:
  The Ledger is the single source of truth for the active period's entries
  while it is being edited. The presentation layer only reflects it and
  emits intents; it never owns entry state.

INVARIANTS:
  1. A ledger initialized with zero entries materializes exactly one blank
     editable row. This is a presentation default, not a persistence rule:
     a saved record may hold zero entries, but it is re-materialized with
     one blank row on load.
  2. Entry days are constrained to the ledger's period. Out-of-range days
     snap to the period start.
  3. Entries are positional: deletion and update are by index, reordering
     does not exist.

LIFECYCLE:
  The ledger is discarded and rebuilt whenever the active period key
  changes. Entries are never migrated across a period change.

SEE ALSO:
  - types.go:  Entry and Record definitions
  - metrics.go: Aggregation over Snapshot()
*/
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alanrss/budget/period"
)

// Ledger holds the ordered, mutable entry rows for one period.
// It has no persistence logic of its own.
type Ledger struct {
	period  period.Period
	entries []Entry
}

// NewLedger builds a ledger for p from an initial entry set. Zero initial
// entries materialize one blank row; every entry's day is constrained to p.
func NewLedger(p period.Period, entries []Entry) *Ledger {
	l := &Ledger{period: p}
	if len(entries) == 0 {
		l.entries = []Entry{BlankEntry(p.Start)}
		return l
	}
	l.entries = make([]Entry, len(entries))
	for i, e := range entries {
		l.entries[i] = l.constrain(e)
	}
	return l
}

// Period returns the day range this ledger accepts entries for.
func (l *Ledger) Period() period.Period {
	return l.period
}

// Len returns the number of rows, blank rows included.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Append adds an entry at the end of the sequence.
func (l *Ledger) Append(e Entry) {
	l.entries = append(l.entries, l.constrain(e))
}

// RemoveAt deletes the row at index i.
func (l *Ledger) RemoveAt(i int) error {
	if i < 0 || i >= len(l.entries) {
		return &IndexError{Index: i, Len: len(l.entries)}
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return nil
}

// Patch is a partial entry update; nil fields are left untouched.
type Patch struct {
	Day           *time.Time
	Description   *string
	Category      *Category
	PaymentMethod *PaymentMethod
	Amount        *decimal.Decimal
}

// UpdateAt applies a partial update to the row at index i.
func (l *Ledger) UpdateAt(i int, p Patch) error {
	if i < 0 || i >= len(l.entries) {
		return &IndexError{Index: i, Len: len(l.entries)}
	}
	e := l.entries[i]
	if p.Day != nil {
		e.Day = *p.Day
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.PaymentMethod != nil {
		e.PaymentMethod = *p.PaymentMethod
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	l.entries[i] = l.constrain(e)
	return nil
}

// Replace swaps the whole entry set (bulk import). An empty replacement
// leaves the ledger truly empty; callers that want the blank-row default
// rebuild the ledger instead.
func (l *Ledger) Replace(entries []Entry) {
	l.entries = make([]Entry, len(entries))
	for i, e := range entries {
		l.entries[i] = l.constrain(e)
	}
}

// Snapshot returns a copy of the current entry sequence, in order.
func (l *Ledger) Snapshot() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// constrain normalizes an entry for this ledger: amount clamped
// non-negative, day truncated to a calendar date and snapped into the
// period's range.
func (l *Ledger) constrain(e Entry) Entry {
	e.Amount = ClampAmount(e.Amount)
	if e.Day.IsZero() || !l.period.Contains(e.Day) {
		e.Day = l.period.Start
	} else {
		e.Day = time.Date(e.Day.Year(), e.Day.Month(), e.Day.Day(), 0, 0, 0, 0, l.period.Start.Location())
	}
	if e.Category == "" {
		e.Category = CategoryOther
	}
	if e.PaymentMethod == "" {
		e.PaymentMethod = PayOther
	}
	return e
}
