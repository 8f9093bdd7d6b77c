package interfaces

import (
	"context"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// SavedViewRepository defines the interface for saved view presets
type SavedViewRepository interface {
	// Put stores or replaces a view
	Put(ctx context.Context, view *model.SavedView) error

	// Get retrieves a view by ID
	Get(ctx context.Context, id types.ViewID) (*model.SavedView, error)

	// ListByOwner returns all views owned by the agent
	ListByOwner(ctx context.Context, owner types.AgentID) ([]*model.SavedView, error)

	// Delete removes a view
	Delete(ctx context.Context, id types.ViewID) error

	// SetDefault marks the view as the owner's default and atomically clears
	// the flag on every other view of the same owner.
	SetDefault(ctx context.Context, owner types.AgentID, id types.ViewID) error
}
