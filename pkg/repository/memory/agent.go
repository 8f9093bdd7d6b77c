package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type agentRepository struct {
	mu     sync.RWMutex
	agents map[types.AgentID]*model.Agent
}

func newAgentRepository() *agentRepository {
	return &agentRepository{
		agents: make(map[types.AgentID]*model.Agent),
	}
}

func (r *agentRepository) Put(ctx context.Context, agent *model.Agent) error {
	if err := agent.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid agent")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *agent
	r.agents[agent.ID] = &stored
	return nil
}

func (r *agentRepository) Get(ctx context.Context, id types.AgentID) (*model.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, exists := r.agents[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "agent not found", goerr.V("id", id))
	}
	copied := *agent
	return &copied, nil
}

func (r *agentRepository) List(ctx context.Context, dept *types.Department) ([]*model.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Agent, 0, len(r.agents))
	for _, agent := range r.agents {
		if dept != nil && agent.Department != *dept {
			continue
		}
		copied := *agent
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
