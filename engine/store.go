/*
store.go - Persistence interfaces for categories and assignments

PURPOSE:
  Defines the boundary between the pure engine and the host application's
  storage. The engine functions take immutable snapshots (plain slices) and
  never reach into mutable state; these interfaces are how those snapshots
  are produced and how the two mutation contracts commit.

CONTRACTS:
  - Listing methods return defensive copies in a stable order.
  - SaveCategory replaces a category definition wholesale by id.
  - DeleteCategory cascades: the store removes the category's assignments.
  - InsertAssignment enforces at-most-one-assignment-per-date and returns
    ErrDateOccupied on violation. This is a backstop; callers re-derive a
    fresh eligibility decision immediately before committing.
  - Snapshot/Restore capture and replace the full state, used by the host's
    undo history.

IMPLEMENTATIONS:
  - engine/store/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: SQLite with a unique index on assignment date
*/
package engine

import "context"

// =============================================================================
// CATEGORY STORE
// =============================================================================

// CategoryStore persists leave category definitions in display order.
type CategoryStore interface {
	// ListCategories returns all categories in their stable display order.
	ListCategories(ctx context.Context) ([]Category, error)

	// GetCategory returns one category or ErrCategoryNotFound.
	GetCategory(ctx context.Context, id CategoryID) (Category, error)

	// SaveCategory inserts a new category or replaces an existing one
	// wholesale by id. New categories append to the display order.
	SaveCategory(ctx context.Context, cat Category) error

	// DeleteCategory removes a category and cascades removal of all its
	// assignments. Returns ErrCategoryNotFound if absent.
	DeleteCategory(ctx context.Context, id CategoryID) error
}

// =============================================================================
// ASSIGNMENT STORE
// =============================================================================

// AssignmentStore persists day assignments. Assignments are immutable once
// created; there is no update, only insert and remove.
type AssignmentStore interface {
	// ListAssignments returns all assignments ordered by date ascending.
	ListAssignments(ctx context.Context) ([]Assignment, error)

	// ListAssignmentsByCategory returns one category's assignments ordered
	// by date ascending.
	ListAssignmentsByCategory(ctx context.Context, id CategoryID) ([]Assignment, error)

	// GetAssignment returns one assignment or ErrAssignmentNotFound.
	GetAssignment(ctx context.Context, id AssignmentID) (Assignment, error)

	// FindAssignmentByDate returns the assignment occupying date, or nil
	// when the date is free.
	FindAssignmentByDate(ctx context.Context, date Date) (*Assignment, error)

	// InsertAssignment adds one assignment. Returns ErrDateOccupied if the
	// date already carries an assignment of any category.
	InsertAssignment(ctx context.Context, a Assignment) error

	// RemoveAssignment removes unconditionally; removal only loosens
	// constraints so no eligibility re-check is needed.
	RemoveAssignment(ctx context.Context, id AssignmentID) error

	// RemoveAssignmentsByCategory removes all of one category's assignments
	// and reports how many were removed.
	RemoveAssignmentsByCategory(ctx context.Context, id CategoryID) (int, error)
}

// =============================================================================
// STORE - Full persistence surface plus whole-state capture
// =============================================================================

// Snapshot is a full copy of persisted state, used by the host's undo stack.
type Snapshot struct {
	Categories  []Category
	Assignments []Assignment
}

// Store combines both record stores with whole-state capture/restore.
type Store interface {
	CategoryStore
	AssignmentStore

	// Snapshot returns a deep copy of the current state.
	Snapshot(ctx context.Context) (Snapshot, error)

	// Restore replaces the full state with the snapshot's contents.
	Restore(ctx context.Context, snap Snapshot) error
}
