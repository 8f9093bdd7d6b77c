package model

import (
	"sync"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// Session is the per-agent working state of one queue view: the active
// filters, the selection, and an overlay of optimistic (not yet confirmed)
// case mutations. There is one Session per agent session and no process-wide
// instance; every engine entry point that needs session state takes one
// explicitly.
//
// The overlay makes a bulk mutation visible to queries issued by the same
// session before the repository round trip completes, and is the unit the
// bulk coordinator rolls back on failure.
type Session struct {
	AgentID      types.AgentID
	Selection    *SelectionSet
	ActiveViewID types.ViewID

	mu      sync.RWMutex
	filters FilterSet
	overlay map[types.CaseID]*Case
}

// NewSession creates a session with the engine's default filters
func NewSession(agentID types.AgentID) *Session {
	return &Session{
		AgentID:   agentID,
		Selection: NewSelectionSet(),
		filters:   DefaultFilters(),
		overlay:   make(map[types.CaseID]*Case),
	}
}

// Filters returns the session's active filter set
func (s *Session) Filters() FilterSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the active filter set
func (s *Session) SetFilters(f FilterSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
}

// Stage records an optimistic version of a case and returns the previous
// overlay entry (nil if there was none) so the caller can restore it on
// rollback.
func (s *Session) Stage(c *Case) *Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.overlay[c.ID]
	s.overlay[c.ID] = c.Clone()
	return prev
}

// Restore puts back a previous overlay entry captured by Stage. A nil prev
// removes the staged entry entirely.
func (s *Session) Restore(id types.CaseID, prev *Case) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev == nil {
		delete(s.overlay, id)
		return
	}
	s.overlay[id] = prev
}

// Unstage drops staged entries once the repository has confirmed them
func (s *Session) Unstage(ids ...types.CaseID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.overlay, id)
	}
}

// HasOverlay reports whether any optimistic mutation is currently staged.
// Queries must not push filters down to storage while this is true: a
// staged reassignment would be filtered on its stored, pre-mutation value.
func (s *Session) HasOverlay() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overlay) > 0
}

// Resolve returns the staged version of the case if one exists, otherwise
// the given case unchanged.
func (s *Session) Resolve(c *Case) *Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if staged, ok := s.overlay[c.ID]; ok {
		return staged
	}
	return c
}
