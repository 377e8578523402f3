// Package store provides engine.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/leave-planner/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	categories  map[engine.CategoryID]engine.Category
	catOrder    []engine.CategoryID
	assignments map[engine.AssignmentID]engine.Assignment
	byDate      map[engine.Date]engine.AssignmentID
}

func NewMemory() *Memory {
	return &Memory{
		categories:  make(map[engine.CategoryID]engine.Category),
		assignments: make(map[engine.AssignmentID]engine.Assignment),
		byDate:      make(map[engine.Date]engine.AssignmentID),
	}
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (m *Memory) ListCategories(_ context.Context) ([]engine.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]engine.Category, 0, len(m.catOrder))
	for _, id := range m.catOrder {
		result = append(result, m.categories[id])
	}
	return result, nil
}

func (m *Memory) GetCategory(_ context.Context, id engine.CategoryID) (engine.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cat, ok := m.categories[id]
	if !ok {
		return engine.Category{}, engine.ErrCategoryNotFound
	}
	return cat, nil
}

// SaveCategory inserts or replaces wholesale by id. Display order is kept
// for replacements; new categories append.
func (m *Memory) SaveCategory(_ context.Context, cat engine.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.categories[cat.ID]; !exists {
		m.catOrder = append(m.catOrder, cat.ID)
	}
	m.categories[cat.ID] = cat
	return nil
}

func (m *Memory) DeleteCategory(_ context.Context, id engine.CategoryID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return engine.ErrCategoryNotFound
	}
	delete(m.categories, id)
	for i, cid := range m.catOrder {
		if cid == id {
			m.catOrder = append(m.catOrder[:i], m.catOrder[i+1:]...)
			break
		}
	}
	// Cascade: a deleted category takes its assignments with it.
	m.removeByCategoryLocked(id)
	return nil
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func (m *Memory) ListAssignments(_ context.Context) ([]engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(func(engine.Assignment) bool { return true }), nil
}

func (m *Memory) ListAssignmentsByCategory(_ context.Context, id engine.CategoryID) ([]engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(func(a engine.Assignment) bool { return a.CategoryID == id }), nil
}

func (m *Memory) listLocked(keep func(engine.Assignment) bool) []engine.Assignment {
	var result []engine.Assignment
	for _, a := range m.assignments {
		if keep(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

func (m *Memory) GetAssignment(_ context.Context, id engine.AssignmentID) (engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assignments[id]
	if !ok {
		return engine.Assignment{}, engine.ErrAssignmentNotFound
	}
	return a, nil
}

func (m *Memory) FindAssignmentByDate(_ context.Context, date engine.Date) (*engine.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byDate[date]
	if !ok {
		return nil, nil
	}
	a := m.assignments[id]
	return &a, nil
}

func (m *Memory) InsertAssignment(_ context.Context, a engine.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, occupied := m.byDate[a.Date]; occupied {
		return engine.ErrDateOccupied
	}
	m.assignments[a.ID] = a
	m.byDate[a.Date] = a.ID
	return nil
}

func (m *Memory) RemoveAssignment(_ context.Context, id engine.AssignmentID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assignments[id]
	if !ok {
		return engine.ErrAssignmentNotFound
	}
	delete(m.assignments, id)
	delete(m.byDate, a.Date)
	return nil
}

func (m *Memory) RemoveAssignmentsByCategory(_ context.Context, id engine.CategoryID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeByCategoryLocked(id), nil
}

func (m *Memory) removeByCategoryLocked(id engine.CategoryID) int {
	removed := 0
	for aid, a := range m.assignments {
		if a.CategoryID == id {
			delete(m.assignments, aid)
			delete(m.byDate, a.Date)
			removed++
		}
	}
	return removed
}

// =============================================================================
// SNAPSHOT / RESTORE - Whole-state capture for undo
// =============================================================================

func (m *Memory) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	cats, _ := m.ListCategories(ctx)
	assigns, _ := m.ListAssignments(ctx)
	return engine.Snapshot{Categories: cats, Assignments: assigns}, nil
}

func (m *Memory) Restore(_ context.Context, snap engine.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.categories = make(map[engine.CategoryID]engine.Category, len(snap.Categories))
	m.catOrder = m.catOrder[:0]
	for _, cat := range snap.Categories {
		m.categories[cat.ID] = cat
		m.catOrder = append(m.catOrder, cat.ID)
	}

	m.assignments = make(map[engine.AssignmentID]engine.Assignment, len(snap.Assignments))
	m.byDate = make(map[engine.Date]engine.AssignmentID, len(snap.Assignments))
	for _, a := range snap.Assignments {
		m.assignments[a.ID] = a
		m.byDate[a.Date] = a.ID
	}
	return nil
}
