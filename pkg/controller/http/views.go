package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/usecase"
)

type filterSetDTO struct {
	Department types.Department `json:"department,omitempty"`
	Status     types.Status     `json:"status,omitempty"`
	Priority   types.Priority   `json:"priority,omitempty"`
	SLARisk    types.RiskLevel  `json:"slaRisk,omitempty"`
	Channel    types.Channel    `json:"channel,omitempty"`
	Tags       []string         `json:"tags,omitempty"`
	Owner      model.Owner      `json:"owner,omitempty"`
	Search     string           `json:"search,omitempty"`
}

func (f filterSetDTO) toModel() model.FilterSet {
	return model.FilterSet{
		Department: f.Department,
		Status:     f.Status,
		Priority:   f.Priority,
		SLARisk:    f.SLARisk,
		Channel:    f.Channel,
		Tags:       f.Tags,
		Owner:      f.Owner,
		Search:     f.Search,
	}
}

func toFilterSetDTO(f model.FilterSet) filterSetDTO {
	return filterSetDTO{
		Department: f.Department,
		Status:     f.Status,
		Priority:   f.Priority,
		SLARisk:    f.SLARisk,
		Channel:    f.Channel,
		Tags:       f.Tags,
		Owner:      f.Owner,
		Search:     f.Search,
	}
}

type viewDTO struct {
	ID        types.ViewID   `json:"id"`
	Name      string         `json:"name"`
	Filters   filterSetDTO   `json:"filters"`
	Sort      types.SortMode `json:"sort"`
	Columns   []string       `json:"columns,omitempty"`
	IsDefault bool           `json:"isDefault"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toViewDTO(v *model.SavedView) viewDTO {
	return viewDTO{
		ID:        v.ID,
		Name:      v.Name,
		Filters:   toFilterSetDTO(v.Filters),
		Sort:      v.Sort,
		Columns:   v.Columns,
		IsDefault: v.IsDefault,
		CreatedAt: v.CreatedAt,
	}
}

type viewRequest struct {
	Name    string         `json:"name"`
	Filters filterSetDTO   `json:"filters"`
	Sort    types.SortMode `json:"sort"`
	Columns []string       `json:"columns"`
}

func (req viewRequest) toInput() usecase.ViewInput {
	return usecase.ViewInput{
		Name:    req.Name,
		Filters: req.Filters.toModel(),
		Sort:    req.Sort,
		Columns: req.Columns,
	}
}

func (s *Server) handleViewList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := s.uc.Views.List(ctx, agentFrom(ctx))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	out := make([]viewDTO, 0, len(views))
	for _, v := range views {
		out = append(out, toViewDTO(v))
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"views": out})
}

func (s *Server) handleViewCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req viewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	view, err := s.uc.Views.Create(ctx, agentFrom(ctx), req.toInput())
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, toViewDTO(view))
}

func (s *Server) handleViewUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req viewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	viewID := types.ViewID(chi.URLParam(r, "viewID"))
	view, err := s.uc.Views.Update(ctx, agentFrom(ctx), viewID, req.toInput())
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toViewDTO(view))
}

func (s *Server) handleViewDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess := s.session(agentFrom(ctx))
	viewID := types.ViewID(chi.URLParam(r, "viewID"))
	if err := s.uc.Views.Delete(ctx, sess, viewID); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleViewSetDefault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewID := types.ViewID(chi.URLParam(r, "viewID"))
	if err := s.uc.Views.SetDefault(ctx, agentFrom(ctx), viewID); err != nil {
		respondError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleViewApply loads a saved view into the agent's session so the next
// inbox query uses its filters.
func (s *Server) handleViewApply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess := s.session(agentFrom(ctx))
	viewID := types.ViewID(chi.URLParam(r, "viewID"))
	view, err := s.uc.Views.Apply(ctx, sess, viewID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toViewDTO(view))
}
