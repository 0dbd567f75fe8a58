// Package period maps reference dates onto calendar buckets (Monday-start
// weeks or calendar months) and derives the canonical storage key for each
// bucket. All boundary math works on local calendar components only - no
// UTC shifting - so a reference date near midnight can never drift into a
// neighboring period's key.
package period

import (
	"fmt"
	"time"
)

// Type defines how reference dates are bucketed into periods.
type Type string

const (
	Week  Type = "week"  // Monday - Sunday
	Month Type = "month" // first - last calendar day
)

// ParseType converts a string into a Type. Unknown values fall back to Week,
// matching the tracker's startup default.
func ParseType(s string) Type {
	if s == string(Month) {
		return Month
	}
	return Week
}

// BoundaryOf returns the canonical start of the period containing d.
//
// For Week, that is the Monday of d's week; a Sunday belongs to the week
// ending that day, so it maps back six days. For Month, the first of d's
// month. The result is idempotent: BoundaryOf(BoundaryOf(d)) == BoundaryOf(d).
func BoundaryOf(d time.Time, t Type) time.Time {
	if t == Month {
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	}
	// time.Weekday is Sunday-indexed (0); re-index so Monday is day 0.
	offset := (int(d.Weekday()) + 6) % 7
	return time.Date(d.Year(), d.Month(), d.Day()-offset, 0, 0, 0, 0, d.Location())
}

// Key derives the stable storage identifier for the period containing d.
//
// Any two dates inside the same period produce the same key; dates in
// different periods never collide. Week keys carry the full boundary date,
// month keys only year and month since every day shares the same boundary.
func Key(d time.Time, t Type) string {
	b := BoundaryOf(d, t)
	if t == Month {
		return fmt.Sprintf("month-%04d-%02d", b.Year(), int(b.Month()))
	}
	return fmt.Sprintf("week-%04d-%02d-%02d", b.Year(), int(b.Month()), b.Day())
}

// Period is the inclusive [Start, End] day range of a single bucket.
type Period struct {
	Type  Type
	Start time.Time
	End   time.Time
}

// Of returns the full period containing d.
func Of(d time.Time, t Type) Period {
	start := BoundaryOf(d, t)
	var end time.Time
	if t == Month {
		// Day 0 of the next month is the last day of this one.
		end = time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, start.Location())
	} else {
		end = start.AddDate(0, 0, 6)
	}
	return Period{Type: t, Start: start, End: end}
}

// Key returns the canonical key for this period.
func (p Period) Key() string {
	return Key(p.Start, p.Type)
}

// Contains reports whether the calendar date of d falls within [Start, End].
func (p Period) Contains(d time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, p.Start.Location())
	return !day.Before(p.Start) && !day.After(p.End)
}

// Days enumerates every calendar date in the period, in order. These are the
// valid day choices for entries in this period.
func (p Period) Days() []time.Time {
	var days []time.Time
	for cur := p.Start; !cur.After(p.End); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur)
	}
	return days
}

// Label returns a human-readable range for display, e.g.
// "Week: 2025-03-03 - 2025-03-09".
func (p Period) Label() string {
	name := "Week"
	if p.Type == Month {
		name = "Month"
	}
	return fmt.Sprintf("%s: %s - %s", name, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}
