package interfaces

import (
	"context"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// UndoRepository is the undo ledger. It is shared storage, not per-session
// state: an undo may be invoked from a different session than the one that
// performed the merge.
type UndoRepository interface {
	// Put stores an undo record
	Put(ctx context.Context, rec *model.UndoRecord) error

	// Get retrieves an undo record by merge ID
	Get(ctx context.Context, id types.MergeID) (*model.UndoRecord, error)

	// Delete removes a consumed undo record
	Delete(ctx context.Context, id types.MergeID) error
}

// AuditRepository stores the mutation audit trail
type AuditRepository interface {
	// Put appends an audit record
	Put(ctx context.Context, rec *model.AuditRecord) error

	// ListRecent returns the most recent records, newest first
	ListRecent(ctx context.Context, limit int) ([]*model.AuditRecord, error)
}
