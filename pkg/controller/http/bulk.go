package http

import (
	"net/http"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type bulkResponse struct {
	Updated []caseDTO `json:"updated"`
}

func (s *Server) respondBulk(w http.ResponseWriter, r *http.Request, updated []*model.Case, err error) {
	ctx := r.Context()
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	resp := bulkResponse{Updated: make([]caseDTO, 0, len(updated))}
	for _, c := range updated {
		resp.Updated = append(resp.Updated, toCaseDTO(model.CaseView{Case: c}))
	}
	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) handleBulkAssign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseIDs    []types.CaseID `json:"caseIds"`
		AssigneeID *types.AgentID `json:"assigneeId"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sess := s.session(agentFrom(r.Context()))
	updated, err := s.uc.Bulk.Assign(r.Context(), sess, req.CaseIDs, req.AssigneeID)
	s.respondBulk(w, r, updated, err)
}

func (s *Server) handleBulkStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseIDs []types.CaseID `json:"caseIds"`
		Status  types.Status   `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sess := s.session(agentFrom(r.Context()))
	updated, err := s.uc.Bulk.SetStatus(r.Context(), sess, req.CaseIDs, req.Status)
	s.respondBulk(w, r, updated, err)
}

func (s *Server) handleBulkPriority(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseIDs  []types.CaseID `json:"caseIds"`
		Priority types.Priority `json:"priority"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sess := s.session(agentFrom(r.Context()))
	updated, err := s.uc.Bulk.SetPriority(r.Context(), sess, req.CaseIDs, req.Priority)
	s.respondBulk(w, r, updated, err)
}

func (s *Server) handleBulkTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseIDs []types.CaseID `json:"caseIds"`
		Tag     string         `json:"tag"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sess := s.session(agentFrom(r.Context()))
	updated, err := s.uc.Bulk.AddTag(r.Context(), sess, req.CaseIDs, req.Tag)
	s.respondBulk(w, r, updated, err)
}
