package model

import (
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// AuditRecord is the trail entry written after every successful mutation.
// Unlike an UndoRecord it carries no snapshots; only merges are undoable.
type AuditRecord struct {
	ID            string
	Type          types.ActionType
	CaseIDs       []types.CaseID
	Actor         types.AgentID
	PerformedAt   time.Time
	PrimaryCaseID *types.CaseID
}
