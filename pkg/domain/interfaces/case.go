package interfaces

import (
	"context"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// CaseRepository defines the interface for Case data access.
//
// Update and BatchUpdate enforce optimistic concurrency: they compare the
// submitted Version against the stored one and fail with ErrConflict on
// mismatch. BatchUpdate is atomic — either every case is written or none is;
// there is no partial-success state.
type CaseRepository interface {
	// Create stores a new case. Empty ID and TicketNumber are assigned from
	// the backend's counter.
	Create(ctx context.Context, c *model.Case) (*model.Case, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, id types.CaseID) (*model.Case, error)

	// GetBatch retrieves all named cases. Any missing id fails the whole
	// call with ErrNotFound.
	GetBatch(ctx context.Context, ids []types.CaseID) ([]*model.Case, error)

	// List retrieves cases with optional filtering
	List(ctx context.Context, opts ...ListCaseOption) ([]*model.Case, error)

	// Update overwrites an existing case after a version check
	Update(ctx context.Context, c *model.Case) (*model.Case, error)

	// BatchUpdate overwrites a set of cases as one atomic operation
	BatchUpdate(ctx context.Context, cases []*model.Case) ([]*model.Case, error)
}

// CaseMessageRepository defines the interface for conversation messages
type CaseMessageRepository interface {
	// Put stores a message
	Put(ctx context.Context, msg *model.CaseMessage) error

	// ListByCase returns a case's messages ordered by CreatedAt ascending
	ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.CaseMessage, error)

	// MoveToCase reassigns the given messages to another case
	MoveToCase(ctx context.Context, ids []types.MessageID, to types.CaseID) error
}
