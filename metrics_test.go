/*
metrics_test.go - Specification tests for the metrics engine

Each test documents one aggregation rule: plain-sum totals, active-day
averaging, clamped remaining/percent, and the warning tiers.
*/
package budget_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alanrss/budget"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func entry(d int, amount float64) budget.Entry {
	return budget.Entry{
		Day:           day(d),
		Category:      budget.CategoryFood,
		PaymentMethod: budget.PayCard,
		Amount:        decimal.NewFromFloat(amount),
	}
}

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestComputeMetrics_ReferenceScenario(t *testing.T) {
	// GIVEN: amounts [10, 20, 0] spread over 2 distinct active days
	// WHEN:  budget is 100
	// THEN:  total=30 count=3 activeDays=2 average=15 remaining=70 percent=30 tier=normal
	entries := []budget.Entry{entry(3, 10), entry(3, 20), entry(4, 0)}
	// The zero-amount row sits on its own day but must not count as active.
	entries[2].Day = day(4)

	m := budget.ComputeMetrics(entries, dec(100))

	assert.True(t, m.Total.Equal(dec(30)), "total = %s", m.Total)
	assert.Equal(t, 3, m.Count)
	assert.Equal(t, 2, m.ActiveDays)
	assert.True(t, m.AveragePerActiveDay.Equal(dec(15)), "average = %s", m.AveragePerActiveDay)
	assert.True(t, m.Remaining.Equal(dec(70)), "remaining = %s", m.Remaining)
	assert.Equal(t, 30, m.PercentOfBudget)
	assert.Equal(t, budget.TierNormal, m.Tier)
}

func TestComputeMetrics_TwoEntriesSameDay_OneActiveDay(t *testing.T) {
	entries := []budget.Entry{entry(3, 10), entry(3, 30)}
	m := budget.ComputeMetrics(entries, dec(100))

	assert.Equal(t, 1, m.ActiveDays)
	assert.True(t, m.AveragePerActiveDay.Equal(dec(40)))
}

func TestComputeMetrics_NoActiveDays_DivisionGuard(t *testing.T) {
	// Only zero-amount rows: activeDays is treated as 1 so the average
	// never divides by zero.
	entries := []budget.Entry{entry(3, 0), entry(4, 0)}
	m := budget.ComputeMetrics(entries, dec(50))

	assert.Equal(t, 1, m.ActiveDays)
	assert.True(t, m.AveragePerActiveDay.IsZero())
	assert.Equal(t, 2, m.Count)
}

func TestComputeMetrics_ZeroBudget(t *testing.T) {
	// GIVEN: budget 0 and any positive total
	// THEN:  percent=0, remaining=0, tier stays normal
	m := budget.ComputeMetrics([]budget.Entry{entry(3, 42)}, decimal.Zero)

	assert.Equal(t, 0, m.PercentOfBudget)
	assert.True(t, m.Remaining.IsZero())
	assert.Equal(t, budget.TierNormal, m.Tier)
}

func TestComputeMetrics_Overspend(t *testing.T) {
	// GIVEN: total 120 against budget 100
	// THEN:  remaining clamps to 0, display percent clamps to 100,
	//        but the tier reflects the unclamped ratio.
	m := budget.ComputeMetrics([]budget.Entry{entry(3, 120)}, dec(100))

	assert.True(t, m.Remaining.IsZero(), "remaining never goes negative")
	assert.Equal(t, 100, m.PercentOfBudget, "display percent is clamped")
	assert.Equal(t, budget.TierDanger, m.Tier, "tier uses the unclamped ratio")
}

func TestComputeMetrics_TierBoundaries(t *testing.T) {
	cases := []struct {
		total float64
		tier  budget.Tier
	}{
		{79, budget.TierNormal},
		{80, budget.TierCaution},
		{99, budget.TierCaution},
		{100, budget.TierDanger},
		{250, budget.TierDanger},
	}
	for _, tc := range cases {
		m := budget.ComputeMetrics([]budget.Entry{entry(3, tc.total)}, dec(100))
		assert.Equalf(t, tc.tier, m.Tier, "total %v", tc.total)
	}
}

func TestComputeMetrics_EmptyEntries(t *testing.T) {
	m := budget.ComputeMetrics(nil, dec(100))

	assert.True(t, m.Total.IsZero())
	assert.Equal(t, 0, m.Count)
	assert.True(t, m.Remaining.Equal(dec(100)))
	assert.Equal(t, budget.TierNormal, m.Tier)
}

func TestComputeMetrics_Recomputed_NoCarriedState(t *testing.T) {
	// Two calls with different inputs must be fully independent.
	first := budget.ComputeMetrics([]budget.Entry{entry(3, 90)}, dec(100))
	second := budget.ComputeMetrics([]budget.Entry{entry(3, 10)}, dec(100))

	assert.Equal(t, budget.TierCaution, first.Tier)
	assert.Equal(t, budget.TierNormal, second.Tier)
	assert.True(t, second.Total.Equal(dec(10)))
}

func TestParseAmount_Coercion(t *testing.T) {
	assert.True(t, budget.ParseAmount("12.50").Equal(dec(12.5)))
	assert.True(t, budget.ParseAmount("").IsZero(), "absent input coerces to zero")
	assert.True(t, budget.ParseAmount("abc").IsZero(), "non-numeric input coerces to zero")
	assert.True(t, budget.ParseAmount("-3").IsZero(), "negative input clamps to zero")
}
