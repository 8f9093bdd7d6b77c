package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type timelineEventDTO struct {
	Type       model.TimelineEventType `json:"type"`
	Timestamp  time.Time               `json:"timestamp"`
	Author     string                  `json:"author"`
	Content    string                  `json:"content"`
	FromTicket types.TicketNumber      `json:"fromTicket,omitempty"`
}

func toTimelineDTO(events []model.TimelineEvent) []timelineEventDTO {
	out := make([]timelineEventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, timelineEventDTO{
			Type:       ev.Type,
			Timestamp:  ev.Timestamp,
			Author:     ev.Author,
			Content:    ev.Content,
			FromTicket: ev.FromTicket,
		})
	}
	return out
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		PrimaryID types.CaseID   `json:"primaryId"`
		MergeIDs  []types.CaseID `json:"mergeIds"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	sess := s.session(agentFrom(ctx))
	result, err := s.uc.Merge.Merge(ctx, sess, req.PrimaryID, req.MergeIDs)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	absorbed := make([]caseDTO, 0, len(result.Absorbed))
	for _, c := range result.Absorbed {
		absorbed = append(absorbed, toCaseDTO(model.CaseView{Case: c}))
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"primary":       toCaseDTO(model.CaseView{Case: result.Primary}),
		"absorbed":      absorbed,
		"timeline":      toTimelineDTO(result.Timeline),
		"undoId":        result.UndoID,
		"undoExpiresAt": result.UndoExpiresAt,
	})
}

func (s *Server) handleMergeUndo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		MergeID types.MergeID `json:"mergeId"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	restored, err := s.uc.Merge.Undo(ctx, req.MergeID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"restored": toCaseDTO(model.CaseView{Case: restored}),
	})
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		CaseID     types.CaseID      `json:"caseId"`
		MessageIDs []types.MessageID `json:"messageIds"`
		Department types.Department  `json:"department"`
		Subject    string            `json:"subject"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	sess := s.session(agentFrom(ctx))
	result, err := s.uc.Split.Split(ctx, sess, req.CaseID, req.MessageIDs, req.Department, req.Subject)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"source":  toCaseDTO(model.CaseView{Case: result.Source}),
		"newCase": toCaseDTO(model.CaseView{Case: result.NewCase}),
	})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID := types.CaseID(chi.URLParam(r, "caseID"))
	events, err := s.uc.Merge.Timeline(ctx, caseID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"events": toTimelineDTO(events),
	})
}
