/*
Package engine provides the pure leave-calendar evaluation core.

PURPOSE:
  This package decides whether a leave category may legally be placed on a
  calendar day, how much of each quota remains, and which categories are
  eligible for every cell of a month view. Every operation is a deterministic
  pure function of (categories, assignments, query date); the engine holds no
  state of its own and performs no I/O.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: A named absence policy with a date window, an optional
    day-of-week filter, and up to three independent quota dimensions
  - Limit: Explicit Unlimited-or-Limited(max) sum type for quota caps
  - Assignment: The placement of exactly one category on exactly one day
  - CalendarDay: A derived month-grid cell, recomputed on every query

DESIGN PRINCIPLES:
  1. Purity: results are fresh values with no retained references into inputs
  2. Decisions as data: ineligibility is a reason string, never a panic
  3. Explicit unboundedness: "no cap configured" can never be read as "cap
     of zero" because Limit is a sum type, not a nullable integer

SEE ALSO:
  - eligibility.go: The ordered allow/deny decision
  - quota.go: Used/remaining computation per quota dimension
  - projection.go: The 42-cell month grid
  - store.go: Persistence interfaces owned by the host application
*/
package engine

import "time"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type CategoryID string
type AssignmentID string

// =============================================================================
// LIMIT - Unlimited or Limited(max), never a nullable integer
// =============================================================================

// Limit is a quota cap for one dimension. The zero value is Unlimited, which
// never blocks eligibility; Limited(0) is a real cap of zero and always does.
type Limit struct {
	capped bool
	max    int
}

// Unlimited returns the no-cap-configured value.
func Unlimited() Limit { return Limit{} }

// Limited returns a cap of max.
func Limited(max int) Limit { return Limit{capped: true, max: max} }

// IsLimited reports whether a cap is configured.
func (l Limit) IsLimited() bool { return l.capped }

// Max returns the configured cap. Meaningful only when IsLimited.
func (l Limit) Max() int { return l.max }

// Remaining returns the headroom left after used assignments.
func (l Limit) Remaining(used int) Remaining {
	if !l.capped {
		return Unbounded()
	}
	return Bounded(l.max - used)
}

// Remaining mirrors Limit on the output side: either unbounded headroom or a
// concrete (possibly negative) count.
type Remaining struct {
	bounded bool
	value   int
}

func Unbounded() Remaining { return Remaining{} }

func Bounded(n int) Remaining { return Remaining{bounded: true, value: n} }

func (r Remaining) IsBounded() bool { return r.bounded }

// Value returns the remaining count. Meaningful only when IsBounded.
func (r Remaining) Value() int { return r.value }

// Exhausted reports whether the dimension blocks further assignments.
// Unbounded headroom never blocks.
func (r Remaining) Exhausted() bool { return r.bounded && r.value <= 0 }

// =============================================================================
// CATEGORY - A named absence policy and its rule set
// =============================================================================

// Category is an absence policy. A calendar day may carry at most one
// assignment of at most one category, subject to this rule set.
type Category struct {
	ID    CategoryID
	Name  string
	Color string

	// Window is the inclusive date range outside which the category is
	// inapplicable. Invariant: Window.Start <= Window.End.
	Window DateRange

	// DaysOfWeek restricts which weekdays the category may be assigned to
	// (0=Sunday..6=Saturday). Nil or empty means all weekdays are allowed.
	DaysOfWeek []time.Weekday

	// Quota dimensions. Each is independent; a category may configure none,
	// one, or all three.
	Weekly        Limit // max assignments within any single Monday-start week
	WeeksPerMonth Limit // max distinct weeks per calendar month with an assignment
	Total         Limit // lifetime assignment cap
}

// AllowsWeekday reports whether the day-of-week filter admits wd.
func (c Category) AllowsWeekday(wd time.Weekday) bool {
	if len(c.DaysOfWeek) == 0 {
		return true
	}
	for _, allowed := range c.DaysOfWeek {
		if allowed == wd {
			return true
		}
	}
	return false
}

// FindCategory looks up a category by id in an ordered category set.
func FindCategory(categories []Category, id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// =============================================================================
// ASSIGNMENT - One category on one day
// =============================================================================

// Assignment places one category on one calendar day. Date and CategoryID
// are immutable once created; "update" replaces the whole record.
type Assignment struct {
	ID         AssignmentID
	Date       Date
	CategoryID CategoryID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// =============================================================================
// CALENDAR DAY - Derived month-grid cell, never persisted
// =============================================================================

// CalendarDay is one of the 42 cells of a projected month view. It is
// recomputed on every query and never cached across mutations.
type CalendarDay struct {
	Date           Date
	IsCurrentMonth bool

	// Assignment occupying this day, if any. A fresh copy, never a
	// reference into the caller's slice.
	Assignment *Assignment

	// Eligible is the ordered subset of category ids currently assignable
	// to this day, in the order the categories were supplied.
	Eligible []CategoryID
}
