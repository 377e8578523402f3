/*
summary.go - Quota usage summaries for display

PURPOSE:
  Turns engine.EvaluateQuotas output into the per-dimension shape the UI
  shows: configured cap, used, remaining, and a utilization ratio. Ratios
  are computed with decimal arithmetic so displayed percentages never pick
  up binary-float artifacts.
*/
package planner

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/warp/leave-planner/engine"
)

// utilizationPlaces is the rounding precision for utilization ratios.
const utilizationPlaces = 4

// DimensionSummary describes one quota dimension at one as-of date.
// For an unconfigured dimension only Used is meaningful.
type DimensionSummary struct {
	Configured  bool
	Max         int
	Used        int
	Remaining   int
	Utilization decimal.Decimal // Used/Max in [0,1+], zero when unconfigured
}

// QuotaSummary bundles all three dimensions for one category.
type QuotaSummary struct {
	CategoryID engine.CategoryID
	AsOf       engine.Date

	Weekly        DimensionSummary
	WeeksPerMonth DimensionSummary
	Total         DimensionSummary
}

// QuotaSummary computes the usage summary for a category. A zero asOf
// defaults to today - this default exists for display only; eligibility
// checks always carry an explicit target date.
func (p *Planner) QuotaSummary(ctx context.Context, id engine.CategoryID, asOf engine.Date) (QuotaSummary, error) {
	if asOf.IsZero() {
		asOf = engine.Today()
	}

	cat, err := p.store.GetCategory(ctx, id)
	if err != nil {
		return QuotaSummary{}, err
	}
	assigns, err := p.store.ListAssignments(ctx)
	if err != nil {
		return QuotaSummary{}, err
	}

	usage := engine.EvaluateQuotas(cat, assigns, asOf)
	return QuotaSummary{
		CategoryID:    id,
		AsOf:          asOf,
		Weekly:        summarize(cat.Weekly, usage.UsedWeekly, usage.RemainingWeekly),
		WeeksPerMonth: summarize(cat.WeeksPerMonth, usage.UsedWeeksThisMonth, usage.RemainingWeeksThisMonth),
		Total:         summarize(cat.Total, usage.UsedTotal, usage.RemainingTotal),
	}, nil
}

func summarize(limit engine.Limit, used int, remaining engine.Remaining) DimensionSummary {
	s := DimensionSummary{Used: used}
	if !limit.IsLimited() {
		return s
	}

	s.Configured = true
	s.Max = limit.Max()
	s.Remaining = remaining.Value()
	if s.Max > 0 {
		s.Utilization = decimal.NewFromInt(int64(used)).
			Div(decimal.NewFromInt(int64(s.Max))).
			Round(utilizationPlaces)
	}
	return s
}
