/*
Package factory provides JSON to Go category conversion.

PURPOSE:
  Converts JSON category definitions into engine.Category values and back.
  Categories are configuration, not code: an admin UI or a config file can
  define them in JSON, and the factory builds the proper Go structs.

JSON SCHEMA:
  {
    "id": "vacation",
    "name": "Vacation",
    "color": "#34d399",
    "window": {"start": "2025-01-01", "end": "2025-12-31"},
    "days_of_week": [1, 3, 5],
    "quotas": {
      "weekly": {"max_days": 2},
      "weeks_per_month": {"max_weeks": 3},
      "total": {"max_days": 20}
    }
  }

  days_of_week uses 0=Sunday..6=Saturday; omit for all days. Each quota
  block is optional; an omitted block means that dimension is unlimited.

VALIDATION:
  Structural validation via go-playground/validator struct tags, then
  semantic checks the tags cannot express (canonical dates, window order).

SEE ALSO:
  - engine/types.go: Category and Limit definitions
  - api/dto.go: Uses CategoryJSON as the API representation
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/warp/leave-planner/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CategoryJSON is the JSON representation of a leave category.
type CategoryJSON struct {
	ID         string      `json:"id" validate:"required"`
	Name       string      `json:"name" validate:"required"`
	Color      string      `json:"color,omitempty"`
	Window     WindowJSON  `json:"window" validate:"required"`
	DaysOfWeek []int       `json:"days_of_week,omitempty" validate:"omitempty,unique,dive,min=0,max=6"`
	Quotas     *QuotasJSON `json:"quotas,omitempty"`
}

// WindowJSON is the inclusive eligibility window.
type WindowJSON struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// QuotasJSON holds the optional quota dimensions.
type QuotasJSON struct {
	Weekly        *WeeklyQuotaJSON        `json:"weekly,omitempty"`
	WeeksPerMonth *WeeksPerMonthQuotaJSON `json:"weeks_per_month,omitempty"`
	Total         *TotalQuotaJSON         `json:"total,omitempty"`
}

type WeeklyQuotaJSON struct {
	MaxDays int `json:"max_days" validate:"min=0"`
}

type WeeksPerMonthQuotaJSON struct {
	MaxWeeks int `json:"max_weeks" validate:"min=0"`
}

type TotalQuotaJSON struct {
	MaxDays int `json:"max_days" validate:"min=0"`
}

// =============================================================================
// CATEGORY FACTORY
// =============================================================================

// CategoryFactory converts JSON categories to Go structs.
type CategoryFactory struct {
	validate *validator.Validate
}

// NewCategoryFactory creates a category factory.
func NewCategoryFactory() *CategoryFactory {
	return &CategoryFactory{validate: validator.New()}
}

// Parse parses a JSON string into an engine.Category.
func (f *CategoryFactory) Parse(jsonStr string) (engine.Category, error) {
	var cj CategoryJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return engine.Category{}, fmt.Errorf("failed to parse category JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON validates and converts an already-decoded CategoryJSON.
func (f *CategoryFactory) FromJSON(cj CategoryJSON) (engine.Category, error) {
	if err := f.validate.Struct(cj); err != nil {
		return engine.Category{}, fmt.Errorf("invalid category definition: %w", err)
	}

	start, err := engine.ParseDate(cj.Window.Start)
	if err != nil {
		return engine.Category{}, fmt.Errorf("window start: %w", err)
	}
	end, err := engine.ParseDate(cj.Window.End)
	if err != nil {
		return engine.Category{}, fmt.Errorf("window end: %w", err)
	}
	window := engine.DateRange{Start: start, End: end}
	if !window.Valid() {
		return engine.Category{}, engine.ErrInvalidWindow
	}

	cat := engine.Category{
		ID:     engine.CategoryID(cj.ID),
		Name:   cj.Name,
		Color:  cj.Color,
		Window: window,
	}
	for _, d := range cj.DaysOfWeek {
		cat.DaysOfWeek = append(cat.DaysOfWeek, time.Weekday(d))
	}
	if q := cj.Quotas; q != nil {
		if q.Weekly != nil {
			cat.Weekly = engine.Limited(q.Weekly.MaxDays)
		}
		if q.WeeksPerMonth != nil {
			cat.WeeksPerMonth = engine.Limited(q.WeeksPerMonth.MaxWeeks)
		}
		if q.Total != nil {
			cat.Total = engine.Limited(q.Total.MaxDays)
		}
	}
	return cat, nil
}

// ToJSON converts an engine.Category back to its JSON representation.
func ToJSON(cat engine.Category) CategoryJSON {
	cj := CategoryJSON{
		ID:    string(cat.ID),
		Name:  cat.Name,
		Color: cat.Color,
		Window: WindowJSON{
			Start: string(cat.Window.Start),
			End:   string(cat.Window.End),
		},
	}
	for _, d := range cat.DaysOfWeek {
		cj.DaysOfWeek = append(cj.DaysOfWeek, int(d))
	}

	var quotas QuotasJSON
	configured := false
	if cat.Weekly.IsLimited() {
		quotas.Weekly = &WeeklyQuotaJSON{MaxDays: cat.Weekly.Max()}
		configured = true
	}
	if cat.WeeksPerMonth.IsLimited() {
		quotas.WeeksPerMonth = &WeeksPerMonthQuotaJSON{MaxWeeks: cat.WeeksPerMonth.Max()}
		configured = true
	}
	if cat.Total.IsLimited() {
		quotas.Total = &TotalQuotaJSON{MaxDays: cat.Total.Max()}
		configured = true
	}
	if configured {
		cj.Quotas = &quotas
	}
	return cj
}
