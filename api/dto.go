/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's internal model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  Every date crossing this boundary is a canonical "YYYY-MM-DD" string.
  Timestamps are RFC 3339.

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  them before touching the planner. Category payloads reuse
  factory.CategoryJSON, which validates itself in the factory.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/category.go: CategoryJSON type
*/
package api

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// AssignmentDTO represents a day assignment in API responses.
type AssignmentDTO struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	CategoryID string `json:"category_id"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// CreateAssignmentRequest asks to place a category on a date.
type CreateAssignmentRequest struct {
	Date       string `json:"date" validate:"required"`
	CategoryID string `json:"category_id" validate:"required"`
}

// CalendarDayDTO is one cell of the 42-cell month grid.
type CalendarDayDTO struct {
	Date                string         `json:"date"`
	IsCurrentMonth      bool           `json:"is_current_month"`
	Assignment          *AssignmentDTO `json:"assignment,omitempty"`
	EligibleCategoryIDs []string       `json:"eligible_category_ids"`
}

// CalendarDTO wraps a projected month.
type CalendarDTO struct {
	Month string           `json:"month"` // "YYYY-MM"
	Days  []CalendarDayDTO `json:"days"`
}

// EligibilityDTO is the allow/deny decision for one (category, date).
type EligibilityDTO struct {
	CategoryID string `json:"category_id"`
	Date       string `json:"date"`
	Eligible   bool   `json:"eligible"`
	Reason     string `json:"reason,omitempty"`
}

// QuotaDimensionDTO is one quota dimension of a summary. Max, remaining and
// utilization are omitted for unconfigured (unlimited) dimensions.
type QuotaDimensionDTO struct {
	Configured  bool   `json:"configured"`
	Max         *int   `json:"max,omitempty"`
	Used        int    `json:"used"`
	Remaining   *int   `json:"remaining,omitempty"`
	Utilization string `json:"utilization,omitempty"` // decimal ratio, e.g. "0.5"
}

// QuotaSummaryDTO reports usage of all three dimensions for one category.
type QuotaSummaryDTO struct {
	CategoryID    string            `json:"category_id"`
	AsOf          string            `json:"as_of"`
	Weekly        QuotaDimensionDTO `json:"weekly"`
	WeeksPerMonth QuotaDimensionDTO `json:"weeks_per_month"`
	Total         QuotaDimensionDTO `json:"total"`
}

// UndoResponse reports the remaining undo depth after an undo.
type UndoResponse struct {
	RemainingDepth int `json:"remaining_depth"`
}

// SeedResponse reports whether seeding happened.
type SeedResponse struct {
	Seeded bool `json:"seeded"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
