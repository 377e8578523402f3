/*
projection.go - The 42-cell month grid

PURPOSE:
  Projects a month view: 6 Monday-anchored weeks (42 days) beginning on the
  Monday on or before the first day of the reference month. Leading and
  trailing days from adjacent months are included and flagged
  IsCurrentMonth=false. Each cell carries the day's occupying assignment (if
  any) and the ordered set of currently eligible category ids.

PURITY:
  Purely derived from its inputs; never mutates categories or assignments
  and returns fresh values. The embedding layer decides caching policy -
  the engine never caches.
*/
package engine

// GridDays is the fixed size of a projected month view: 6 weeks of 7 days.
const GridDays = 42

// ProjectMonth produces the 42 calendar days shown for referenceDate's
// month, sorted ascending and starting on a Monday. Eligibility for each
// cell is recomputed against the full assignment set; the eligible ids
// preserve the order of the supplied categories.
func ProjectMonth(categories []Category, assignments []Assignment, referenceDate Date) []CalendarDay {
	monthStart := referenceDate.MonthStart()
	monthEnd := referenceDate.MonthEnd()
	gridStart := monthStart.WeekStart()

	byDate := make(map[Date]Assignment, len(assignments))
	for _, a := range assignments {
		// At most one assignment per date by invariant; first wins if the
		// input is ever inconsistent.
		if _, ok := byDate[a.Date]; !ok {
			byDate[a.Date] = a
		}
	}

	days := make([]CalendarDay, 0, GridDays)
	for i := 0; i < GridDays; i++ {
		date := gridStart.AddDays(i)

		day := CalendarDay{
			Date:           date,
			IsCurrentMonth: date.InRange(monthStart, monthEnd),
		}

		if a, ok := byDate[date]; ok {
			copied := a
			day.Assignment = &copied
		}

		for _, cat := range categories {
			if EvaluateEligibility(cat, date, assignments).Eligible {
				day.Eligible = append(day.Eligible, cat.ID)
			}
		}

		days = append(days, day)
	}
	return days
}
