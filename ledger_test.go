package budget_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanrss/budget"
	"github.com/alanrss/budget/period"
)

func marchWeek() period.Period {
	// Monday 2025-03-03 .. Sunday 2025-03-09
	return period.Of(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), period.Week)
}

func TestNewLedger_EmptyMaterializesBlankRow(t *testing.T) {
	// GIVEN: zero initial entries
	// THEN:  exactly one blank editable row exists, dated at the boundary
	l := budget.NewLedger(marchWeek(), nil)

	require.Equal(t, 1, l.Len())
	blank := l.Snapshot()[0]
	assert.True(t, blank.Amount.IsZero())
	assert.Equal(t, "", blank.Description)
	assert.True(t, blank.Day.Equal(marchWeek().Start))
}

func TestNewLedger_KeepsProvidedEntries(t *testing.T) {
	l := budget.NewLedger(marchWeek(), []budget.Entry{entry(4, 12), entry(5, 8)})

	require.Equal(t, 2, l.Len())
	assert.True(t, l.Snapshot()[0].Amount.Equal(dec(12)))
}

func TestLedger_AppendAndRemoveByPosition(t *testing.T) {
	l := budget.NewLedger(marchWeek(), []budget.Entry{entry(3, 1), entry(4, 2), entry(5, 3)})

	require.NoError(t, l.RemoveAt(1))

	snap := l.Snapshot()
	require.Equal(t, 2, l.Len())
	assert.True(t, snap[0].Amount.Equal(dec(1)))
	assert.True(t, snap[1].Amount.Equal(dec(3)), "later rows shift down")
}

func TestLedger_RemoveAt_OutOfRange(t *testing.T) {
	l := budget.NewLedger(marchWeek(), nil)

	err := l.RemoveAt(5)
	assert.True(t, errors.Is(err, budget.ErrIndexOutOfRange))

	var idxErr *budget.IndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, 5, idxErr.Index)
}

func TestLedger_UpdateAt_PartialFields(t *testing.T) {
	l := budget.NewLedger(marchWeek(), []budget.Entry{entry(4, 10)})

	desc := "groceries"
	amt := dec(25)
	require.NoError(t, l.UpdateAt(0, budget.Patch{Description: &desc, Amount: &amt}))

	got := l.Snapshot()[0]
	assert.Equal(t, "groceries", got.Description)
	assert.True(t, got.Amount.Equal(dec(25)))
	assert.Equal(t, budget.CategoryFood, got.Category, "untouched fields survive")
}

func TestLedger_NegativeAmountClampsToZero(t *testing.T) {
	e := entry(4, 10)
	e.Amount = decimal.NewFromInt(-7)
	l := budget.NewLedger(marchWeek(), []budget.Entry{e})

	assert.True(t, l.Snapshot()[0].Amount.IsZero())
}

func TestLedger_OutOfPeriodDaySnapsToStart(t *testing.T) {
	// An entry dated outside the week snaps to the period start rather
	// than carrying a day the period cannot display.
	e := entry(20, 5) // March 20 is outside the Mar 3-9 week
	l := budget.NewLedger(marchWeek(), []budget.Entry{e})

	assert.True(t, l.Snapshot()[0].Day.Equal(marchWeek().Start))
}

func TestLedger_Replace_EmptyStaysEmpty(t *testing.T) {
	// Replace is the clear/import path: an empty replacement persists as
	// zero entries. The blank-row default belongs to ledger construction.
	l := budget.NewLedger(marchWeek(), []budget.Entry{entry(4, 10)})

	l.Replace(nil)

	assert.Equal(t, 0, l.Len())
}

func TestLedger_SnapshotIsACopy(t *testing.T) {
	l := budget.NewLedger(marchWeek(), []budget.Entry{entry(4, 10)})

	snap := l.Snapshot()
	snap[0].Description = "mutated"

	assert.Equal(t, "", l.Snapshot()[0].Description)
}

func TestParseCategory_UnknownBecomesOther(t *testing.T) {
	assert.Equal(t, budget.CategoryFood, budget.ParseCategory("Food"))
	assert.Equal(t, budget.CategoryOther, budget.ParseCategory("surprise"))
	assert.Equal(t, budget.PayCard, budget.ParsePaymentMethod(" card "))
	assert.Equal(t, budget.PayOther, budget.ParsePaymentMethod("iou"))
}
