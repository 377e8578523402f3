/*
handlers.go - HTTP API handlers for the leave calendar

PURPOSE:
  Exposes the planner via REST. Handles HTTP request/response, JSON
  serialization, and input validation; all decisions belong to the engine.

ENDPOINTS:
  Categories:
    GET    /api/categories               List category definitions
    POST   /api/categories               Create a category
    GET    /api/categories/{id}          Get one category
    PUT    /api/categories/{id}          Replace a category wholesale
    DELETE /api/categories/{id}          Delete (cascades its assignments)
    GET    /api/categories/{id}/quotas   Quota usage summary (?as_of=)

  Assignments:
    GET    /api/assignments              List assignments
    POST   /api/assignments              Assign a category to a date
    DELETE /api/assignments/{id}         Unassign

  Calendar:
    GET    /api/calendar                 42-cell month grid (?month=YYYY-MM)
    GET    /api/eligibility              Decision for (?category_id=&date=)

  Session:
    POST   /api/undo                     Undo the most recent mutation
    POST   /api/seed                     Seed starter data if store is empty

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 409: Ineligible assignment, occupied date, empty undo history
  - 500: Internal errors

  An ineligible assignment's reason string is surfaced verbatim; the UI
  shows it to the user untranslated.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/warp/leave-planner/engine"
	"github.com/warp/leave-planner/factory"
	"github.com/warp/leave-planner/planner"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Planner *planner.Planner
	Factory *factory.CategoryFactory

	validate *validator.Validate
}

// NewHandler creates a handler over the given planner.
func NewHandler(p *planner.Planner) *Handler {
	return &Handler{
		Planner:  p,
		Factory:  factory.NewCategoryFactory(),
		validate: validator.New(),
	}
}

// =============================================================================
// CATEGORY HANDLERS
// =============================================================================

// ListCategories returns all category definitions in display order.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.Planner.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories", err)
		return
	}

	dtos := make([]factory.CategoryJSON, len(cats))
	for i, c := range cats {
		dtos[i] = factory.ToJSON(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCategory returns a single category.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := engine.CategoryID(chi.URLParam(r, "id"))

	cat, err := h.Planner.Category(r.Context(), id)
	if err != nil {
		writeMapped(w, "Failed to get category", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.ToJSON(cat))
}

// CreateCategory creates a new category from its JSON definition.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var cj factory.CategoryJSON
	if err := json.NewDecoder(r.Body).Decode(&cj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cat, err := h.Factory.FromJSON(cj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category definition", err)
		return
	}

	if _, err := h.Planner.Category(r.Context(), cat.ID); err == nil {
		writeError(w, http.StatusConflict, "Category already exists", nil)
		return
	} else if !engine.IsNotFound(err) {
		writeError(w, http.StatusInternalServerError, "Failed to check category", err)
		return
	}

	if err := h.Planner.ReplaceCategory(r.Context(), cat); err != nil {
		writeMapped(w, "Failed to create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, factory.ToJSON(cat))
}

// ReplaceCategory replaces a category definition wholesale by id.
func (h *Handler) ReplaceCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var cj factory.CategoryJSON
	if err := json.NewDecoder(r.Body).Decode(&cj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if cj.ID != "" && cj.ID != id {
		writeError(w, http.StatusBadRequest, "Category id in body does not match URL", nil)
		return
	}
	cj.ID = id

	cat, err := h.Factory.FromJSON(cj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category definition", err)
		return
	}
	if err := h.Planner.ReplaceCategory(r.Context(), cat); err != nil {
		writeMapped(w, "Failed to replace category", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.ToJSON(cat))
}

// DeleteCategory removes a category and cascades its assignments.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := engine.CategoryID(chi.URLParam(r, "id"))

	if err := h.Planner.DeleteCategory(r.Context(), id); err != nil {
		writeMapped(w, "Failed to delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetQuotaSummary returns the usage summary for one category. The optional
// as_of query parameter defaults to today (display only).
func (h *Handler) GetQuotaSummary(w http.ResponseWriter, r *http.Request) {
	id := engine.CategoryID(chi.URLParam(r, "id"))

	var asOf engine.Date
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := engine.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
			return
		}
		asOf = parsed
	}

	summary, err := h.Planner.QuotaSummary(r.Context(), id, asOf)
	if err != nil {
		writeMapped(w, "Failed to compute quota summary", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuotaSummaryDTO(summary))
}

// =============================================================================
// ASSIGNMENT HANDLERS
// =============================================================================

// ListAssignments returns all assignments ordered by date.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assigns, err := h.Planner.Assignments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
		return
	}

	dtos := make([]AssignmentDTO, len(assigns))
	for i, a := range assigns {
		dtos[i] = toAssignmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAssignment places a category on a date after a fresh eligibility
// re-check inside the planner.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields", err)
		return
	}

	date, err := engine.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	a, err := h.Planner.Assign(r.Context(), date, engine.CategoryID(req.CategoryID))
	if err != nil {
		writeMapped(w, "Failed to create assignment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentDTO(a))
}

// DeleteAssignment removes an assignment unconditionally.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := engine.AssignmentID(chi.URLParam(r, "id"))

	if err := h.Planner.Unassign(r.Context(), id); err != nil {
		writeMapped(w, "Failed to delete assignment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// GetCalendar returns the 42-cell grid for a month ("?month=YYYY-MM",
// defaulting to the current month).
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ref := engine.Today()
	month := r.URL.Query().Get("month")
	if month != "" {
		parsed, err := engine.ParseDate(month + "-01")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
			return
		}
		ref = parsed
	}

	days, err := h.Planner.Calendar(r.Context(), ref)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to project calendar", err)
		return
	}

	dto := CalendarDTO{
		Month: string(ref.MonthStart())[:7],
		Days:  make([]CalendarDayDTO, len(days)),
	}
	for i, d := range days {
		cell := CalendarDayDTO{
			Date:                string(d.Date),
			IsCurrentMonth:      d.IsCurrentMonth,
			EligibleCategoryIDs: make([]string, 0, len(d.Eligible)),
		}
		if d.Assignment != nil {
			a := toAssignmentDTO(*d.Assignment)
			cell.Assignment = &a
		}
		for _, id := range d.Eligible {
			cell.EligibleCategoryIDs = append(cell.EligibleCategoryIDs, string(id))
		}
		dto.Days[i] = cell
	}
	writeJSON(w, http.StatusOK, dto)
}

// CheckEligibility returns the decision for one (category, date) pair.
func (h *Handler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	catID := r.URL.Query().Get("category_id")
	rawDate := r.URL.Query().Get("date")
	if catID == "" || rawDate == "" {
		writeError(w, http.StatusBadRequest, "category_id and date are required", nil)
		return
	}
	date, err := engine.ParseDate(rawDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	decision, err := h.Planner.CheckEligibility(r.Context(), engine.CategoryID(catID), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to evaluate eligibility", err)
		return
	}
	writeJSON(w, http.StatusOK, EligibilityDTO{
		CategoryID: catID,
		Date:       string(date),
		Eligible:   decision.Eligible,
		Reason:     decision.Reason,
	})
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

// Undo restores the state before the most recent mutation.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	if err := h.Planner.Undo(r.Context()); err != nil {
		writeMapped(w, "Failed to undo", err)
		return
	}
	writeJSON(w, http.StatusOK, UndoResponse{RemainingDepth: h.Planner.UndoDepth()})
}

// Seed loads starter data when the store is empty.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.Planner.SeedIfEmpty(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed", err)
		return
	}
	writeJSON(w, http.StatusOK, SeedResponse{Seeded: seeded})
}

// =============================================================================
// DTO MAPPING
// =============================================================================

func toAssignmentDTO(a engine.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:         string(a.ID),
		Date:       string(a.Date),
		CategoryID: string(a.CategoryID),
	}
	if !a.CreatedAt.IsZero() {
		dto.CreatedAt = a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if !a.UpdatedAt.IsZero() {
		dto.UpdatedAt = a.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return dto
}

func toQuotaSummaryDTO(s planner.QuotaSummary) QuotaSummaryDTO {
	return QuotaSummaryDTO{
		CategoryID:    string(s.CategoryID),
		AsOf:          string(s.AsOf),
		Weekly:        toDimensionDTO(s.Weekly),
		WeeksPerMonth: toDimensionDTO(s.WeeksPerMonth),
		Total:         toDimensionDTO(s.Total),
	}
}

func toDimensionDTO(d planner.DimensionSummary) QuotaDimensionDTO {
	dto := QuotaDimensionDTO{Configured: d.Configured, Used: d.Used}
	if d.Configured {
		max := d.Max
		remaining := d.Remaining
		dto.Max = &max
		dto.Remaining = &remaining
		dto.Utilization = d.Utilization.String()
	}
	return dto
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeMapped translates store/planner errors to HTTP statuses. An
// IneligibleError surfaces its reason string verbatim.
func writeMapped(w http.ResponseWriter, message string, err error) {
	var inel *engine.IneligibleError
	if errors.As(err, &inel) {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: inel.Reason})
		return
	}

	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case engine.IsClientError(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
