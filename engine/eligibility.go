/*
eligibility.go - The ordered allow/deny decision for one (category, date)

PURPOSE:
  Composes the window check, day-of-week check, single-assignment-per-day
  checks, and quota checks into one decision with a human-readable reason.

CHECK ORDER (fixed, short-circuiting on first failure):
  1. Window            "outside leave window"
  2. Day of week       "day of week not allowed"
  3. Duplicate         "already assigned"               (same date+category)
  4. Exclusivity       "date already has another leave assigned"
  5. Weekly quota      "weekly quota exceeded"
  6. Total quota       "total quota exceeded"
  7. Weeks per month   "monthly week limit exceeded"

  The order matters: reasons shown to the user should reflect the most
  fundamental violation first. Exclusivity is deliberately checked before
  quotas so the user learns the day is occupied rather than that a moot
  quota is exceeded.

ERROR MODEL:
  Failures are data, not errors. A dangling category reference is an
  unconditional ineligibility ("unknown leave category"), never a crash.

SEE ALSO:
  - quota.go: The numbers behind checks 5-7
  - projection.go: Applies this decision to every cell of a month grid
*/
package engine

// Verbatim ineligibility reasons. The host application surfaces these to the
// end user without aggregation or translation.
const (
	ReasonOutsideWindow   = "outside leave window"
	ReasonDayOfWeek       = "day of week not allowed"
	ReasonAlreadyAssigned = "already assigned"
	ReasonDateOccupied    = "date already has another leave assigned"
	ReasonWeeklyQuota     = "weekly quota exceeded"
	ReasonTotalQuota      = "total quota exceeded"
	ReasonMonthlyWeeks    = "monthly week limit exceeded"
	ReasonUnknownCategory = "unknown leave category"
)

// Decision is the outcome of an eligibility evaluation. Reason is empty
// exactly when Eligible is true.
type Decision struct {
	Eligible bool
	Reason   string
}

func allow() Decision { return Decision{Eligible: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// EvaluateEligibility decides whether cat may be assigned to date given the
// existing assignment set. Pure and idempotent.
func EvaluateEligibility(cat Category, date Date, assignments []Assignment) Decision {
	// 1. Window
	if !cat.Window.Contains(date) {
		return deny(ReasonOutsideWindow)
	}

	// 2. Day of week
	if !cat.AllowsWeekday(date.Weekday()) {
		return deny(ReasonDayOfWeek)
	}

	// 3+4. At most one assignment per date, system-wide. A day carries one
	// category's leave, not one per category.
	for _, a := range assignments {
		if a.Date != date {
			continue
		}
		if a.CategoryID == cat.ID {
			return deny(ReasonAlreadyAssigned)
		}
		return deny(ReasonDateOccupied)
	}

	// 5+6. Weekly and total quotas, evaluated at the target date.
	usage := EvaluateQuotas(cat, assignments, date)
	if usage.RemainingWeekly.Exhausted() {
		return deny(ReasonWeeklyQuota)
	}
	if usage.RemainingTotal.Exhausted() {
		return deny(ReasonTotalQuota)
	}

	// 7. Weeks per month. Assigning into a week the category already uses
	// this month is free; only consuming a NEW week slot can exceed the cap.
	if cat.WeeksPerMonth.IsLimited() {
		weeks := usedWeekStarts(cat, assignments, date)
		if _, counted := weeks[date.WeekStart()]; !counted && len(weeks) >= cat.WeeksPerMonth.Max() {
			return deny(ReasonMonthlyWeeks)
		}
	}

	return allow()
}

// EvaluateEligibilityByID resolves id against the category set first. A
// dangling id (e.g. after a category was deleted) is an unconditional
// ineligibility, not an error.
func EvaluateEligibilityByID(categories []Category, id CategoryID, date Date, assignments []Assignment) Decision {
	cat, ok := FindCategory(categories, id)
	if !ok {
		return deny(ReasonUnknownCategory)
	}
	return EvaluateEligibility(cat, date, assignments)
}
