package client

import "sync"

// SelectionTracker tracks multi-row selection scoped to the currently
// visible page of rows. Selection never outlives the visible set: replacing
// the visible rows (new page, new filter) clears it.
type SelectionTracker struct {
	mu       sync.Mutex
	visible  []uint
	selected map[uint]struct{}
}

// NewSelectionTracker creates an empty tracker.
func NewSelectionTracker() *SelectionTracker {
	return &SelectionTracker{
		selected: make(map[uint]struct{}),
	}
}

// SetVisible replaces the visible row set and clears any existing selection.
// A selection referring to rows that are no longer rendered is a correctness
// bug, not a convenience.
func (s *SelectionTracker) SetVisible(ids []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = make([]uint, len(ids))
	copy(s.visible, ids)
	s.selected = make(map[uint]struct{})
}

// Toggle flips membership for one visible row. IDs outside the visible set
// are ignored.
func (s *SelectionTracker) Toggle(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isVisibleLocked(id) {
		return
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
	} else {
		s.selected[id] = struct{}{}
	}
}

// SelectAll selects every currently visible row.
func (s *SelectionTracker) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[uint]struct{}, len(s.visible))
	for _, id := range s.visible {
		s.selected[id] = struct{}{}
	}
}

// Clear empties the selection without touching the visible set.
func (s *SelectionTracker) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[uint]struct{})
}

// IsSelected reports whether one row is selected.
func (s *SelectionTracker) IsSelected(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// AllSelected is derived, never stored: true iff every visible row is
// selected and the visible set is non-empty.
func (s *SelectionTracker) AllSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visible) > 0 && len(s.selected) == len(s.visible)
}

// Count returns the number of selected rows.
func (s *SelectionTracker) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// Selected returns the selected IDs in visible-row order.
func (s *SelectionTracker) Selected() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint, 0, len(s.selected))
	for _, id := range s.visible {
		if _, ok := s.selected[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *SelectionTracker) isVisibleLocked(id uint) bool {
	for _, v := range s.visible {
		if v == id {
			return true
		}
	}
	return false
}
