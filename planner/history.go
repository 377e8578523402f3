package planner

import "github.com/warp/leave-planner/engine"

// DefaultHistoryDepth bounds the undo stack. Full snapshots are simple but
// memory-unbounded, so the stack drops its oldest entry past this depth;
// deep histories belong to a command-based undo, not this one.
const DefaultHistoryDepth = 50

// =============================================================================
// HISTORY - Bounded stack of full state snapshots
// =============================================================================

// History is a LIFO stack of engine.Snapshot with a fixed capacity.
// Not safe for concurrent use; the planner is single-writer.
type History struct {
	depth int
	stack []engine.Snapshot
}

// NewHistory creates a history bounded to depth entries (minimum 1).
func NewHistory(depth int) *History {
	if depth < 1 {
		depth = 1
	}
	return &History{depth: depth}
}

// Push records a snapshot, evicting the oldest entry when full.
func (h *History) Push(snap engine.Snapshot) {
	if len(h.stack) == h.depth {
		copy(h.stack, h.stack[1:])
		h.stack = h.stack[:len(h.stack)-1]
	}
	h.stack = append(h.stack, snap)
}

// Pop returns the most recent snapshot, or false when empty.
func (h *History) Pop() (engine.Snapshot, bool) {
	if len(h.stack) == 0 {
		return engine.Snapshot{}, false
	}
	snap := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return snap, true
}

// Len reports the number of stored snapshots.
func (h *History) Len() int { return len(h.stack) }
