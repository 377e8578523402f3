/*
Package planner wraps the pure engine with the store-facing mutation
contracts.

PURPOSE:
  The engine decides; the planner commits. This package owns the
  check-then-write sequence for assignments, the wholesale category
  replacement contract, cascade deletion, the undo history, and the quota
  summaries shown to the user.

WHY A WRAPPER?
  The engine is a pure function of (categories, assignments, date) and holds
  no state. Something has to load the snapshot, re-derive a FRESH eligibility
  decision immediately before writing (assignments may have changed since the
  UI last queried), and commit. That is this package.

INVARIANT:
  At most one assignment per calendar date, system-wide. Assign re-checks
  eligibility against current state right before the insert; the store's
  unique-date constraint backstops the remaining race. The planner itself is
  single-writer: the surrounding application serializes mutations.

SEE ALSO:
  - engine/eligibility.go: The decision being re-derived
  - engine/store.go: The persistence boundary
  - history.go: Bounded snapshot stack for undo
*/
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/warp/leave-planner/engine"
)

// Planner composes an engine.Store with the evaluation core.
type Planner struct {
	store   engine.Store
	history *History

	// now is a seam for tests; defaults to time.Now.
	now func() time.Time
}

// New creates a planner over the given store with a bounded undo history.
func New(store engine.Store) *Planner {
	return &Planner{
		store:   store,
		history: NewHistory(DefaultHistoryDepth),
		now:     time.Now,
	}
}

// =============================================================================
// READ OPERATIONS - Pure projections over a fresh snapshot
// =============================================================================

// Categories returns all category definitions in display order.
func (p *Planner) Categories(ctx context.Context) ([]engine.Category, error) {
	return p.store.ListCategories(ctx)
}

// Category returns one category or engine.ErrCategoryNotFound.
func (p *Planner) Category(ctx context.Context, id engine.CategoryID) (engine.Category, error) {
	return p.store.GetCategory(ctx, id)
}

// Assignments returns all assignments ordered by date.
func (p *Planner) Assignments(ctx context.Context) ([]engine.Assignment, error) {
	return p.store.ListAssignments(ctx)
}

// Calendar projects the 42-cell month grid for referenceDate's month.
func (p *Planner) Calendar(ctx context.Context, referenceDate engine.Date) ([]engine.CalendarDay, error) {
	cats, err := p.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	assigns, err := p.store.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ProjectMonth(cats, assigns, referenceDate), nil
}

// CheckEligibility evaluates whether id may be assigned to date right now.
// A dangling category id yields an ineligible decision, never an error.
func (p *Planner) CheckEligibility(ctx context.Context, id engine.CategoryID, date engine.Date) (engine.Decision, error) {
	cats, err := p.store.ListCategories(ctx)
	if err != nil {
		return engine.Decision{}, err
	}
	assigns, err := p.store.ListAssignments(ctx)
	if err != nil {
		return engine.Decision{}, err
	}
	return engine.EvaluateEligibilityByID(cats, id, date, assigns), nil
}

// =============================================================================
// MUTATION CONTRACTS
// =============================================================================

// Assign places category id on date. The eligibility decision is re-derived
// against current state immediately before the write; a stale UI decision is
// never trusted. Returns *engine.IneligibleError when the fresh check fails.
func (p *Planner) Assign(ctx context.Context, date engine.Date, id engine.CategoryID) (engine.Assignment, error) {
	decision, err := p.CheckEligibility(ctx, id, date)
	if err != nil {
		return engine.Assignment{}, err
	}
	if !decision.Eligible {
		return engine.Assignment{}, &engine.IneligibleError{CategoryID: id, Date: date, Reason: decision.Reason}
	}

	if err := p.pushSnapshot(ctx); err != nil {
		return engine.Assignment{}, err
	}

	now := p.now()
	a := engine.Assignment{
		ID:         engine.AssignmentID(uuid.NewString()),
		Date:       date,
		CategoryID: id,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.store.InsertAssignment(ctx, a); err != nil {
		// Check-then-write race lost: the store's unique-date backstop fired.
		p.history.Pop()
		return engine.Assignment{}, err
	}
	return a, nil
}

// Unassign removes an assignment unconditionally. Removal only loosens
// constraints, so no eligibility re-check is performed.
func (p *Planner) Unassign(ctx context.Context, id engine.AssignmentID) error {
	if _, err := p.store.GetAssignment(ctx, id); err != nil {
		return err
	}
	if err := p.pushSnapshot(ctx); err != nil {
		return err
	}
	if err := p.store.RemoveAssignment(ctx, id); err != nil {
		p.history.Pop()
		return err
	}
	return nil
}

// ReplaceCategory replaces a category definition wholesale by id, or creates
// it when new. The window invariant is validated here; existing assignments
// are left untouched even if the new rules would no longer admit them.
func (p *Planner) ReplaceCategory(ctx context.Context, cat engine.Category) error {
	if cat.ID == "" {
		return fmt.Errorf("category id is required")
	}
	if !cat.Window.Valid() {
		return engine.ErrInvalidWindow
	}
	if err := p.pushSnapshot(ctx); err != nil {
		return err
	}
	if err := p.store.SaveCategory(ctx, cat); err != nil {
		p.history.Pop()
		return err
	}
	return nil
}

// DeleteCategory removes a category; the store cascades removal of all its
// assignments.
func (p *Planner) DeleteCategory(ctx context.Context, id engine.CategoryID) error {
	if _, err := p.store.GetCategory(ctx, id); err != nil {
		return err
	}
	if err := p.pushSnapshot(ctx); err != nil {
		return err
	}
	if err := p.store.DeleteCategory(ctx, id); err != nil {
		p.history.Pop()
		return err
	}
	return nil
}

// =============================================================================
// UNDO - Bounded stack of full snapshots
// =============================================================================

// Undo restores the state captured before the most recent mutation.
// Returns engine.ErrNothingToUndo when the history is empty.
func (p *Planner) Undo(ctx context.Context) error {
	snap, ok := p.history.Pop()
	if !ok {
		return engine.ErrNothingToUndo
	}
	return p.store.Restore(ctx, snap)
}

// UndoDepth reports how many mutations can currently be undone.
func (p *Planner) UndoDepth() int { return p.history.Len() }

func (p *Planner) pushSnapshot(ctx context.Context) error {
	snap, err := p.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	p.history.Push(snap)
	return nil
}
