package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-planner/engine"
	"github.com/warp/leave-planner/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func assignment(id, date, catID string) engine.Assignment {
	now := time.Now().UTC().Truncate(time.Second)
	return engine.Assignment{
		ID:         engine.AssignmentID(id),
		Date:       engine.Date(date),
		CategoryID: engine.CategoryID(catID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// =============================================================================
// CATEGORIES
// =============================================================================

func TestCategory_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := engine.Category{
		ID:            "remote",
		Name:          "Remote Work",
		Color:         "#60a5fa",
		Window:        engine.DateRange{Start: "2025-07-03", End: "2025-08-02"},
		DaysOfWeek:    []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		Weekly:        engine.Limited(1),
		WeeksPerMonth: engine.Limited(4),
		Total:         engine.Limited(20),
	}
	require.NoError(t, s.SaveCategory(ctx, want))

	got, err := s.GetCategory(ctx, "remote")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCategory_NullMeansUnlimited(t *testing.T) {
	// A category with no quotas and no day filter must come back as
	// Unlimited everywhere, never as a cap of zero.
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCategory(ctx, engine.Category{
		ID:     "sick",
		Name:   "Sick Leave",
		Window: engine.DateRange{Start: "2025-01-01", End: "2025-12-31"},
	}))

	got, err := s.GetCategory(ctx, "sick")
	require.NoError(t, err)
	assert.False(t, got.Weekly.IsLimited())
	assert.False(t, got.WeeksPerMonth.IsLimited())
	assert.False(t, got.Total.IsLimited())
	assert.Empty(t, got.DaysOfWeek)
}

func TestCategory_ZeroCapSurvivesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCategory(ctx, engine.Category{
		ID:     "frozen",
		Name:   "Frozen",
		Window: engine.DateRange{Start: "2025-01-01", End: "2025-12-31"},
		Weekly: engine.Limited(0),
	}))

	got, err := s.GetCategory(ctx, "frozen")
	require.NoError(t, err)
	require.True(t, got.Weekly.IsLimited(), "Limited(0) must not collapse to Unlimited")
	assert.Equal(t, 0, got.Weekly.Max())
}

func TestCategory_ListKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []engine.CategoryID{"c", "a", "b"} {
		require.NoError(t, s.SaveCategory(ctx, engine.Category{
			ID:     id,
			Name:   string(id),
			Window: engine.DateRange{Start: "2025-01-01", End: "2025-12-31"},
		}))
	}

	// Replacing an existing row must not move it.
	require.NoError(t, s.SaveCategory(ctx, engine.Category{
		ID:     "c",
		Name:   "c renamed",
		Window: engine.DateRange{Start: "2025-01-01", End: "2025-12-31"},
	}))

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, engine.CategoryID("c"), cats[0].ID)
	assert.Equal(t, "c renamed", cats[0].Name)
	assert.Equal(t, engine.CategoryID("a"), cats[1].ID)
	assert.Equal(t, engine.CategoryID("b"), cats[2].ID)
}

func TestCategory_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetCategory(context.Background(), "ghost")
	assert.ErrorIs(t, err, engine.ErrCategoryNotFound)
}

func TestDeleteCategory_Cascades(t *testing.T) {
	// GIVEN: Two categories, each with an assignment
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []engine.CategoryID{"vacation", "sick"} {
		require.NoError(t, s.SaveCategory(ctx, engine.Category{
			ID:     id,
			Name:   string(id),
			Window: engine.DateRange{Start: "2025-01-01", End: "2025-12-31"},
		}))
	}
	require.NoError(t, s.InsertAssignment(ctx, assignment("a1", "2025-07-07", "vacation")))
	require.NoError(t, s.InsertAssignment(ctx, assignment("a2", "2025-07-08", "sick")))

	// WHEN: Deleting vacation
	require.NoError(t, s.DeleteCategory(ctx, "vacation"))

	// THEN: Only sick's assignment remains
	assigns, err := s.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assigns, 1)
	assert.Equal(t, engine.AssignmentID("a2"), assigns[0].ID)

	// AND: Deleting again reports not found
	assert.ErrorIs(t, s.DeleteCategory(ctx, "vacation"), engine.ErrCategoryNotFound)
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func TestInsertAssignment_UniqueDateBackstop(t *testing.T) {
	// The unique index on date catches a lost check-then-write race,
	// even across categories.
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertAssignment(ctx, assignment("a1", "2025-07-07", "vacation")))

	err := s.InsertAssignment(ctx, assignment("a2", "2025-07-07", "sick"))
	assert.ErrorIs(t, err, engine.ErrDateOccupied)

	// The freed date accepts a new assignment.
	require.NoError(t, s.RemoveAssignment(ctx, "a1"))
	require.NoError(t, s.InsertAssignment(ctx, assignment("a3", "2025-07-07", "sick")))
}

func TestAssignments_ListOrderedByDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertAssignment(ctx, assignment("a1", "2025-07-09", "vacation")))
	require.NoError(t, s.InsertAssignment(ctx, assignment("a2", "2025-07-07", "vacation")))
	require.NoError(t, s.InsertAssignment(ctx, assignment("a3", "2025-07-08", "sick")))

	assigns, err := s.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assigns, 3)
	assert.Equal(t, engine.Date("2025-07-07"), assigns[0].Date)
	assert.Equal(t, engine.Date("2025-07-08"), assigns[1].Date)
	assert.Equal(t, engine.Date("2025-07-09"), assigns[2].Date)

	byCat, err := s.ListAssignmentsByCategory(ctx, "vacation")
	require.NoError(t, err)
	require.Len(t, byCat, 2)
}

func TestFindAssignmentByDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertAssignment(ctx, assignment("a1", "2025-07-07", "vacation")))

	found, err := s.FindAssignmentByDate(ctx, "2025-07-07")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, engine.AssignmentID("a1"), found.ID)

	// A free date yields nil without an error.
	missing, err := s.FindAssignmentByDate(ctx, "2025-07-08")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAssignment_TimestampsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := assignment("a1", "2025-07-07", "vacation")
	require.NoError(t, s.InsertAssignment(ctx, want))

	got, err := s.GetAssignment(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(want.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(want.UpdatedAt))
}

func TestRemoveAssignment_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.RemoveAssignment(context.Background(), "missing")
	assert.ErrorIs(t, err, engine.ErrAssignmentNotFound)
}

func TestRemoveAssignmentsByCategory_ReportsCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertAssignment(ctx, assignment("a1", "2025-07-07", "vacation")))
	require.NoError(t, s.InsertAssignment(ctx, assignment("a2", "2025-07-08", "vacation")))
	require.NoError(t, s.InsertAssignment(ctx, assignment("a3", "2025-07-09", "sick")))

	n, err := s.RemoveAssignmentsByCategory(ctx, "vacation")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// =============================================================================
// SNAPSHOT / RESTORE
// =============================================================================

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCategory(ctx, engine.Category{
		ID:         "remote",
		Name:       "Remote",
		Window:     engine.DateRange{Start: "2025-01-01", End: "2025-12-31"},
		DaysOfWeek: []time.Weekday{time.Friday},
		Weekly:     engine.Limited(1),
	}))
	require.NoError(t, s.InsertAssignment(ctx, assignment("a1", "2025-07-11", "remote")))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)

	// Mutate past the snapshot.
	require.NoError(t, s.InsertAssignment(ctx, assignment("a2", "2025-07-18", "remote")))
	require.NoError(t, s.DeleteCategory(ctx, "remote"))

	require.NoError(t, s.Restore(ctx, snap))

	cat, err := s.GetCategory(ctx, "remote")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Friday}, cat.DaysOfWeek)
	assert.True(t, cat.Weekly.IsLimited())

	assigns, err := s.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assigns, 1)
	assert.Equal(t, engine.AssignmentID("a1"), assigns[0].ID)
}

func TestRestore_EmptySnapshotClearsState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCategory(ctx, engine.Category{
		ID:     "vacation",
		Name:   "Vacation",
		Window: engine.DateRange{Start: "2025-01-01", End: "2025-12-31"},
	}))
	require.NoError(t, s.InsertAssignment(ctx, assignment("a1", "2025-07-07", "vacation")))

	require.NoError(t, s.Restore(ctx, engine.Snapshot{}))

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
	assigns, err := s.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Empty(t, assigns)
}
