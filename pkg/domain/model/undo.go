package model

import (
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// MergeUndoWindow is how long a merge stays reversible. After the window the
// merge is permanent and must be reversed manually by an agent.
const MergeUndoWindow = 30 * time.Second

// UndoRecord is one entry in the undo ledger: a performed merge together
// with the exact pre-merge state needed to reverse it. PerformedAt is set by
// the engine clock at merge time; validity is a pure function of (now,
// PerformedAt) and never depends on caller-local time.
type UndoRecord struct {
	ID            types.MergeID
	Type          types.ActionType
	PrimaryCaseID types.CaseID
	CaseIDs       []types.CaseID
	PerformedAt   time.Time

	// PrimarySnapshot and Snapshots hold the pre-merge field state of the
	// primary and every absorbed case.
	PrimarySnapshot *Case
	Snapshots       []*Case
}

// Expired reports whether the undo window has lapsed at the given instant
func (r *UndoRecord) Expired(now time.Time) bool {
	return now.Sub(r.PerformedAt) >= MergeUndoWindow
}

// Clone returns a deep copy of the record
func (r *UndoRecord) Clone() *UndoRecord {
	cloned := *r
	if r.CaseIDs != nil {
		cloned.CaseIDs = make([]types.CaseID, len(r.CaseIDs))
		copy(cloned.CaseIDs, r.CaseIDs)
	}
	if r.PrimarySnapshot != nil {
		cloned.PrimarySnapshot = r.PrimarySnapshot.Clone()
	}
	if r.Snapshots != nil {
		cloned.Snapshots = make([]*Case, len(r.Snapshots))
		for i, snap := range r.Snapshots {
			cloned.Snapshots[i] = snap.Clone()
		}
	}
	return &cloned
}
