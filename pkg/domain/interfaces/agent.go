package interfaces

import (
	"context"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// AgentRepository defines the interface for agent records
type AgentRepository interface {
	// Put stores or replaces an agent
	Put(ctx context.Context, agent *model.Agent) error

	// Get retrieves an agent by ID
	Get(ctx context.Context, id types.AgentID) (*model.Agent, error)

	// List retrieves agents, optionally restricted to one department
	List(ctx context.Context, dept *types.Department) ([]*model.Agent, error)
}
