package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Canonical calendar day ("YYYY-MM-DD")
// =============================================================================

// Date is a timezone-naive calendar day in canonical "YYYY-MM-DD" form.
//
// The string form is the ONLY representation that crosses component
// boundaries. Because the layout is zero-padded and big-endian, plain
// lexicographic comparison orders dates correctly, so range checks never
// depend on time-of-day or the host time zone. time.Time is used only as an
// internal computation detail inside a single operation and never escapes.
type Date string

const dateLayout = "2006-01-02"

// ParseDate validates s as a canonical calendar day.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	// Round-trip guards against non-canonical forms like "2025-7-1".
	if t.Format(dateLayout) != s {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return Date(s), nil
}

// NewDate builds a Date from components.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateLayout))
}

// Today returns the current calendar day. Used only to default display
// queries; eligibility checks always receive an explicit target date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// IsZero reports whether d is the empty date.
func (d Date) IsZero() bool { return d == "" }

func (d Date) String() string { return string(d) }

// t converts to UTC midnight for internal calendar math.
func (d Date) t() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// =============================================================================
// COMPARISON - Lexicographic on the canonical form
// =============================================================================

func (d Date) Before(other Date) bool { return d < other }
func (d Date) After(other Date) bool  { return d > other }

// InRange reports whether d falls within [start, end], inclusive.
func (d Date) InRange(start, end Date) bool { return d >= start && d <= end }

// =============================================================================
// ARITHMETIC
// =============================================================================

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date(d.t().AddDate(0, 0, n).Format(dateLayout))
}

// Weekday returns the weekday with 0=Sunday..6=Saturday numbering.
// Day-of-week filters on categories use this numbering.
func (d Date) Weekday() time.Weekday { return d.t().Weekday() }

// isoWeekday returns Monday=1..Sunday=7. Week anchoring uses the ISO
// numbering, not locale-dependent weekday order, so weeks start on Monday
// regardless of the host locale.
func (d Date) isoWeekday() int {
	return (int(d.t().Weekday())+6)%7 + 1
}

// WeekStart returns the Monday of d's week.
func (d Date) WeekStart() Date { return d.AddDays(1 - d.isoWeekday()) }

// WeekEnd returns the Sunday of d's week.
func (d Date) WeekEnd() Date { return d.WeekStart().AddDays(6) }

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	t := d.t()
	return NewDate(t.Year(), t.Month(), 1)
}

// MonthEnd returns the last day of d's month.
func (d Date) MonthEnd() Date {
	t := d.t()
	return Date(time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -1).Format(dateLayout))
}

// =============================================================================
// DATE RANGE - Inclusive bounds
// =============================================================================

// DateRange is an inclusive [Start, End] calendar window.
type DateRange struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d Date) bool { return d.InRange(r.Start, r.End) }

// Valid reports whether Start <= End.
func (r DateRange) Valid() bool { return !r.Start.IsZero() && !r.End.IsZero() && r.Start <= r.End }

func (r DateRange) String() string {
	return "[" + string(r.Start) + ", " + string(r.End) + "]"
}
