package model

import (
	"sort"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// SelectionSet tracks which cases an agent has picked for a bulk action,
// plus an independent cursor (highlighted row). It is ephemeral per-session
// state and is never persisted. Selection survives page changes until
// explicitly cleared; the caller decides whether a re-filter clears it.
type SelectionSet struct {
	selected    map[types.CaseID]struct{}
	highlighted types.CaseID
}

// NewSelectionSet returns an empty selection
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{selected: make(map[types.CaseID]struct{})}
}

// Toggle adds the case to the selection if absent, removes it if present
func (s *SelectionSet) Toggle(id types.CaseID) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// SelectRange adds the contiguous run between fromID and toID (inclusive,
// in either direction) as they appear in the currently displayed order.
// Unknown endpoints leave the selection unchanged.
func (s *SelectionSet) SelectRange(fromID, toID types.CaseID, visibleOrder []types.CaseID) {
	fromIdx, toIdx := -1, -1
	for i, id := range visibleOrder {
		if id == fromID {
			fromIdx = i
		}
		if id == toID {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return
	}
	if fromIdx > toIdx {
		fromIdx, toIdx = toIdx, fromIdx
	}
	for _, id := range visibleOrder[fromIdx : toIdx+1] {
		s.selected[id] = struct{}{}
	}
}

// SelectAll replaces the selection with the given visible ids
func (s *SelectionSet) SelectAll(visibleIDs []types.CaseID) {
	s.selected = make(map[types.CaseID]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		s.selected[id] = struct{}{}
	}
}

// Clear empties the selection. The highlighted cursor is independent and
// stays put.
func (s *SelectionSet) Clear() {
	s.selected = make(map[types.CaseID]struct{})
}

// SetHighlighted moves the cursor. An empty id clears it. The highlighted
// case need not be a member of the selection.
func (s *SelectionSet) SetHighlighted(id types.CaseID) {
	s.highlighted = id
}

// Highlighted returns the cursor case id, empty if none
func (s *SelectionSet) Highlighted() types.CaseID {
	return s.highlighted
}

// Has reports whether the case is selected
func (s *SelectionSet) Has(id types.CaseID) bool {
	_, ok := s.selected[id]
	return ok
}

// Len returns the number of selected cases
func (s *SelectionSet) Len() int {
	return len(s.selected)
}

// IDs returns the selected case ids in deterministic (sorted) order
func (s *SelectionSet) IDs() []types.CaseID {
	ids := make([]types.CaseID, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
