package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// METRICS - Derived values, always recomputed, never persisted
// =============================================================================

// Tier classifies spend against budget.
type Tier string

const (
	TierNormal  Tier = "normal"  // percent < 80
	TierCaution Tier = "caution" // 80 <= percent < 100
	TierDanger  Tier = "danger"  // percent >= 100
)

// Tier thresholds, in percent of budget.
const (
	cautionThreshold = 80
	dangerThreshold  = 100
)

// Metrics is the derived summary of one period's entries. It is never
// persisted; the tracker recomputes it synchronously after every mutation.
type Metrics struct {
	Total               decimal.Decimal
	Count               int
	ActiveDays          int
	AveragePerActiveDay decimal.Decimal
	Remaining           decimal.Decimal
	PercentOfBudget     int
	Tier                Tier
}

// ComputeMetrics aggregates an entry set against a budget.
//
// Pure and total: every call recomputes from scratch, and no input can make
// it fail. Amounts are already clamped non-negative at entry time, so Total
// is a plain sum.
//
// Remaining is clamped at zero - overspend shows up only through the tier
// (and a display percent pinned at 100), never as a negative remainder.
// PercentOfBudget is the rounded, [0,100]-clamped display value; the
// unclamped ratio drives the warning tier. A zero budget yields percent 0
// and TierNormal.
func ComputeMetrics(entries []Entry, budget decimal.Decimal) Metrics {
	total := decimal.Zero
	days := make(map[time.Time]struct{})
	for _, e := range entries {
		total = total.Add(e.Amount)
		if e.Amount.IsPositive() {
			day := time.Date(e.Day.Year(), e.Day.Month(), e.Day.Day(), 0, 0, 0, 0, time.UTC)
			days[day] = struct{}{}
		}
	}

	activeDays := len(days)
	if activeDays == 0 {
		activeDays = 1
	}

	m := Metrics{
		Total:               total,
		Count:               len(entries),
		ActiveDays:          activeDays,
		AveragePerActiveDay: total.Div(decimal.NewFromInt(int64(activeDays))),
		Remaining:           decimal.Max(decimal.Zero, budget.Sub(total)),
		Tier:                TierNormal,
	}

	if budget.IsPositive() {
		ratio := int(total.Div(budget).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		switch {
		case ratio >= dangerThreshold:
			m.Tier = TierDanger
		case ratio >= cautionThreshold:
			m.Tier = TierCaution
		}
		if ratio > 100 {
			ratio = 100
		}
		if ratio < 0 {
			ratio = 0
		}
		m.PercentOfBudget = ratio
	}

	return m
}
