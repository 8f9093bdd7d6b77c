package http

import (
	"net/http"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type selectionDTO struct {
	CaseIDs     []types.CaseID `json:"caseIds"`
	Highlighted types.CaseID   `json:"highlighted,omitempty"`
}

func (s *Server) respondSelection(w http.ResponseWriter, r *http.Request, sess *model.Session) {
	respondJSON(r.Context(), w, http.StatusOK, selectionDTO{
		CaseIDs:     sess.Selection.IDs(),
		Highlighted: sess.Selection.Highlighted(),
	})
}

func (s *Server) handleSelectionGet(w http.ResponseWriter, r *http.Request) {
	sess := s.session(agentFrom(r.Context()))
	s.respondSelection(w, r, sess)
}

func (s *Server) handleSelectionToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID types.CaseID `json:"caseId"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sess := s.session(agentFrom(r.Context()))
	sess.Selection.Toggle(req.CaseID)
	s.respondSelection(w, r, sess)
}

func (s *Server) handleSelectionRange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromID     types.CaseID   `json:"fromId"`
		ToID       types.CaseID   `json:"toId"`
		VisibleIDs []types.CaseID `json:"visibleIds"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sess := s.session(agentFrom(r.Context()))
	sess.Selection.SelectRange(req.FromID, req.ToID, req.VisibleIDs)
	s.respondSelection(w, r, sess)
}

func (s *Server) handleSelectionAll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VisibleIDs []types.CaseID `json:"visibleIds"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sess := s.session(agentFrom(r.Context()))
	sess.Selection.SelectAll(req.VisibleIDs)
	s.respondSelection(w, r, sess)
}

func (s *Server) handleSelectionClear(w http.ResponseWriter, r *http.Request) {
	sess := s.session(agentFrom(r.Context()))
	sess.Selection.Clear()
	s.respondSelection(w, r, sess)
}

func (s *Server) handleSelectionHighlight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID types.CaseID `json:"caseId"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	sess := s.session(agentFrom(r.Context()))
	sess.Selection.SetHighlighted(req.CaseID)
	s.respondSelection(w, r, sess)
}
