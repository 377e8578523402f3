/*
quota.go - Used/remaining computation for each quota dimension

PURPOSE:
  Given a category and an as-of date, computes how much of each configured
  quota dimension has been used and how much remains:

    weekly:          assignments within the Monday-start week of asOf
    weeks-per-month: DISTINCT weeks (by week-start date) of asOf's month
                     containing at least one assignment
    total:           lifetime assignment count, unbounded by any window

  Only assignments of the category itself are counted; other categories'
  assignments never consume this category's quotas.

UNCONFIGURED DIMENSIONS:
  A dimension without a cap yields unbounded remaining headroom. It is
  "always sufficient", not zero and not an error.

SEE ALSO:
  - eligibility.go: Consumes these numbers for the quota checks
*/
package engine

// =============================================================================
// QUOTA USAGE - Computed per (category, as-of date)
// =============================================================================

// QuotaUsage is the result of evaluating all three quota dimensions for one
// category at one as-of date.
type QuotaUsage struct {
	UsedWeekly         int
	UsedWeeksThisMonth int
	UsedTotal          int

	RemainingWeekly         Remaining
	RemainingWeeksThisMonth Remaining
	RemainingTotal          Remaining
}

// EvaluateQuotas computes used and remaining counts for cat as of asOf.
// Pure: no side effects, identical inputs yield identical output. Display
// callers typically pass Today(); eligibility checks always pass the target
// date explicitly.
func EvaluateQuotas(cat Category, assignments []Assignment, asOf Date) QuotaUsage {
	weekStart := asOf.WeekStart()
	weekEnd := asOf.WeekEnd()

	var usedWeekly, usedTotal int
	for _, a := range assignments {
		if a.CategoryID != cat.ID {
			continue
		}
		usedTotal++
		if a.Date.InRange(weekStart, weekEnd) {
			usedWeekly++
		}
	}

	usedWeeks := len(usedWeekStarts(cat, assignments, asOf))

	return QuotaUsage{
		UsedWeekly:         usedWeekly,
		UsedWeeksThisMonth: usedWeeks,
		UsedTotal:          usedTotal,

		RemainingWeekly:         cat.Weekly.Remaining(usedWeekly),
		RemainingWeeksThisMonth: cat.WeeksPerMonth.Remaining(usedWeeks),
		RemainingTotal:          cat.Total.Remaining(usedTotal),
	}
}

// usedWeekStarts returns the set of distinct week-start dates among cat's
// assignments that fall inside asOf's calendar month.
//
// Attribution for weeks straddling a month boundary follows purely from the
// date filter: a week partially outside the month still counts once if any
// of its days WITHIN the month carry an assignment. A straddling week with
// assignments on both sides therefore counts once in each month's own
// evaluation.
func usedWeekStarts(cat Category, assignments []Assignment, asOf Date) map[Date]struct{} {
	monthStart := asOf.MonthStart()
	monthEnd := asOf.MonthEnd()

	weeks := make(map[Date]struct{})
	for _, a := range assignments {
		if a.CategoryID != cat.ID {
			continue
		}
		if a.Date.InRange(monthStart, monthEnd) {
			weeks[a.Date.WeekStart()] = struct{}{}
		}
	}
	return weeks
}
