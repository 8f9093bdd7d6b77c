package http

import (
	"net/http"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type agentDTO struct {
	ID          types.AgentID    `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Department  types.Department `json:"department"`
	CurrentLoad int              `json:"currentLoad"`
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dept *types.Department
	if v := r.URL.Query().Get("department"); v != "" {
		d := types.Department(v)
		dept = &d
	}

	workloads, err := s.uc.Agents.List(ctx, dept)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	agents := make([]agentDTO, 0, len(workloads))
	for _, wl := range workloads {
		agents = append(agents, agentDTO{
			ID:          wl.Agent.ID,
			Name:        wl.Agent.Name,
			Email:       wl.Agent.Email,
			Department:  wl.Agent.Department,
			CurrentLoad: wl.CurrentLoad,
		})
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{"agents": agents})
}
