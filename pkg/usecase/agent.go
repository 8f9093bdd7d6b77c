package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// AgentUseCase answers roster queries for the assignment picker
type AgentUseCase struct {
	repo interfaces.Repository
}

// List returns agents, optionally limited to one department, each with
// their count of open assigned cases. Roster and workload are fetched
// concurrently.
func (uc *AgentUseCase) List(ctx context.Context, dept *types.Department) ([]*model.AgentWorkload, error) {
	var agents []*model.Agent
	var openCases []*model.Case

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		agents, err = uc.repo.Agent().List(egCtx, dept)
		if err != nil {
			return goerr.Wrap(err, "failed to list agents")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		openCases, err = uc.repo.Case().List(egCtx, interfaces.WithOpenOnly())
		if err != nil {
			return goerr.Wrap(err, "failed to list open cases")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	loads := make(map[types.AgentID]int, len(agents))
	for _, c := range openCases {
		if c.Assignee != nil && !c.IsMergedAway() {
			loads[*c.Assignee]++
		}
	}

	out := make([]*model.AgentWorkload, 0, len(agents))
	for _, agent := range agents {
		out = append(out, &model.AgentWorkload{
			Agent:       agent,
			CurrentLoad: loads[agent.ID],
		})
	}
	return out, nil
}
