/*
Package budget provides the core domain model for the period-keyed budget
tracker.

KEY CONCEPTS IN THIS FILE (types.go):
  - Entry:  A single spend line (day, description, category, method, amount)
  - Record: The unit of persistence - everything one period holds
  - ParseAmount: Lenient amount coercion (bad input becomes zero, never fails)

DESIGN PRINCIPLES:
  1. Precision: amounts use decimal.Decimal, never float64
  2. Positional identity: entries have no IDs; position in the ledger IS
     their identity, and deletion is by position
  3. Full-record writes: a Record is always persisted whole, never merged

SEE ALSO:
  - ledger.go:  The live, mutable view of a record's entries
  - metrics.go: Pure aggregation over an entry set
  - store.go:   Persistence interface keyed by period key
*/
package budget

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alanrss/budget/period"
)

// DefaultCurrency is used when a fresh period is initialized.
const DefaultCurrency = "USD"

// Category is the enumerated spend tag for an entry.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHousing       Category = "housing"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryShopping      Category = "shopping"
	CategoryOther         Category = "other"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryFood, CategoryTransport, CategoryHousing,
		CategoryEntertainment, CategoryHealth, CategoryShopping,
		CategoryOther,
	}
}

// ParseCategory maps arbitrary input onto a known category.
// Unknown values become CategoryOther.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// PaymentMethod is the enumerated payment tag for an entry.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
	PayOther    PaymentMethod = "other"
)

// PaymentMethods lists every valid payment method, in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PayCash, PayCard, PayTransfer, PayOther}
}

// ParsePaymentMethod maps arbitrary input onto a known method.
// Unknown values become PayOther.
func ParsePaymentMethod(s string) PaymentMethod {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PaymentMethods() {
		if m == known {
			return m
		}
	}
	return PayOther
}

// Entry is a single spend line inside one period.
//
// Entries carry no independent identity: their position in the ledger's
// ordered sequence is their identity, and reordering is not supported.
// Amount is always non-negative; negative or unparseable input is clamped
// to zero at entry time.
type Entry struct {
	Day           time.Time       `json:"day"`
	Description   string          `json:"description"`
	Category      Category        `json:"category"`
	PaymentMethod PaymentMethod   `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
}

// BlankEntry returns the editable default row materialized for a period
// that has no entries yet.
func BlankEntry(day time.Time) Entry {
	return Entry{
		Day:           day,
		Category:      CategoryOther,
		PaymentMethod: PayCash,
		Amount:        decimal.Zero,
	}
}

// ParseAmount coerces free-form input into a non-negative amount.
// Non-numeric or absent input becomes zero; negatives clamp to zero.
// It never fails.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClampAmount enforces the non-negative invariant on an already-parsed
// amount.
func ClampAmount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Record is the unit of persistence: the full state of one period.
//
// Exactly one Record exists per period key in the store at any time, and
// writing a key always overwrites the previous record in full. Derived
// metrics are never part of a Record; they are recomputed from Entries.
type Record struct {
	Type        period.Type     `json:"type"`
	PeriodStart time.Time       `json:"periodStart"`
	Currency    string          `json:"currency"`
	Budget      decimal.Decimal `json:"budget"`
	Entries     []Entry         `json:"entries"`
	Note        string          `json:"note"`
}

// NewRecord initializes a fresh record for the period containing start:
// default currency, zero budget, empty note, boundary-derived period start,
// and no entries (the ledger materializes the blank row).
func NewRecord(start time.Time, t period.Type) Record {
	return Record{
		Type:        t,
		PeriodStart: period.BoundaryOf(start, t),
		Currency:    DefaultCurrency,
		Budget:      decimal.Zero,
		Entries:     nil,
	}
}

// WellFormed reports whether a decoded record has the shape the store
// contract promises its callers: a recognized period type and a non-zero
// period start. Stores treat stored values failing this check the same as
// unparseable ones - absent, never a partially-typed record.
func (r Record) WellFormed() bool {
	if r.Type != period.Week && r.Type != period.Month {
		return false
	}
	return !r.PeriodStart.IsZero()
}

// Period returns the full day range this record covers.
func (r Record) Period() period.Period {
	return period.Of(r.PeriodStart, r.Type)
}

// Key returns the canonical storage key for this record.
func (r Record) Key() string {
	return period.Key(r.PeriodStart, r.Type)
}

// Clone returns a deep copy; callers may mutate the copy freely.
func (r Record) Clone() Record {
	out := r
	out.Entries = make([]Entry, len(r.Entries))
	copy(out.Entries, r.Entries)
	return out
}
