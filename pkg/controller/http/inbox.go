package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/usecase"
)

// caseDTO is the wire shape of one inbox row
type caseDTO struct {
	ID            types.CaseID        `json:"id"`
	TicketNumber  types.TicketNumber  `json:"ticketNumber"`
	Department    types.Department    `json:"department"`
	Subject       string              `json:"subject"`
	RequesterName string              `json:"requesterName"`
	Priority      types.Priority      `json:"priority"`
	Status        types.Status        `json:"status"`
	Channel       types.Channel       `json:"channel"`
	Assignee      *types.AgentID      `json:"assignee"`
	Tags          []string            `json:"tags"`
	MessageCount  int                 `json:"messageCount"`
	Preview       string              `json:"preview,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	MergedCases   []types.CaseID      `json:"mergedCases,omitempty"`
	SplitFrom     *types.TicketNumber `json:"splitFrom,omitempty"`
	SplitInto     *types.TicketNumber `json:"splitInto,omitempty"`
	Version       int64               `json:"version"`
	SLA           *slaDTO             `json:"sla,omitempty"`
}

type slaDTO struct {
	FirstResponseDueAt time.Time       `json:"firstResponseDueAt"`
	ResolutionDueAt    time.Time       `json:"resolutionDueAt"`
	RiskLevel          types.RiskLevel `json:"riskLevel"`
	Breached           bool            `json:"breached"`
	PercentElapsed     int             `json:"percentElapsed"`
}

func toCaseDTO(cv model.CaseView) caseDTO {
	dto := caseDTO{
		ID:            cv.Case.ID,
		TicketNumber:  cv.Case.TicketNumber,
		Department:    cv.Case.Department,
		Subject:       cv.Case.Subject,
		RequesterName: cv.Case.Requester.Name,
		Priority:      cv.Case.Priority,
		Status:        cv.Case.Status,
		Channel:       cv.Case.Channel,
		Assignee:      cv.Case.Assignee,
		Tags:          cv.Case.Tags,
		MessageCount:  cv.Case.MessageCount,
		Preview:       cv.Case.LastMessagePreview,
		CreatedAt:     cv.Case.CreatedAt,
		UpdatedAt:     cv.Case.UpdatedAt,
		MergedCases:   cv.Case.MergedCases,
		SplitFrom:     cv.Case.SplitFrom,
		SplitInto:     cv.Case.SplitInto,
		Version:       cv.Case.Version,
	}
	// bulk responses carry no SLA: the client recomputes on the next
	// inbox refresh anyway
	if cv.SLA.RiskLevel != "" {
		dto.SLA = &slaDTO{
			FirstResponseDueAt: cv.SLA.FirstResponseDueAt,
			ResolutionDueAt:    cv.SLA.ResolutionDueAt,
			RiskLevel:          cv.SLA.RiskLevel,
			Breached:           cv.SLA.Breached,
			PercentElapsed:     cv.SLA.PercentElapsed,
		}
	}
	return dto
}

type inboxResponse struct {
	Cases       []caseDTO `json:"cases"`
	Page        int       `json:"page"`
	PerPage     int       `json:"perPage"`
	TotalCount  int       `json:"totalCount"`
	TotalPages  int       `json:"totalPages"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// handleInbox serves GET /api/inbox. Filters arrive as query parameters;
// absent parameters keep the session's current filter values.
func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.session(agentFrom(ctx))

	filters := filtersFromQuery(r, sess.Filters())
	sess.SetFilters(filters)

	q := usecase.InboxQuery{
		Filters: filters,
		Sort:    types.SortMode(r.URL.Query().Get("sort")),
	}
	if v := r.URL.Query().Get("page"); v != "" {
		q.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("perPage"); v != "" {
		q.PerPage, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		q.PerPage, _ = strconv.Atoi(v)
	}

	page, err := s.uc.Inbox.List(ctx, sess, q)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	resp := inboxResponse{
		Cases:       make([]caseDTO, 0, len(page.Cases)),
		Page:        page.Page,
		PerPage:     page.PerPage,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
		GeneratedAt: page.GeneratedAt,
	}
	for _, cv := range page.Cases {
		resp.Cases = append(resp.Cases, toCaseDTO(cv))
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

// filtersFromQuery overlays query parameters onto the given base filters.
// An explicit "All" resets a dimension; an absent parameter leaves it as is.
func filtersFromQuery(r *http.Request, base model.FilterSet) model.FilterSet {
	q := r.URL.Query()

	// "dept" and "department" are both accepted; the short form wins when
	// a request carries both.
	if v := q.Get("department"); v != "" {
		base.Department = types.Department(v)
	}
	if v := q.Get("dept"); v != "" {
		base.Department = types.Department(v)
	}
	if v := q.Get("status"); v != "" {
		base.Status = types.Status(v)
	}
	if v := q.Get("priority"); v != "" {
		base.Priority = types.Priority(v)
	}
	if v := q.Get("slaRisk"); v != "" {
		base.SLARisk = types.RiskLevel(v)
	}
	if v := q.Get("channel"); v != "" {
		base.Channel = types.Channel(v)
	}
	if v := q.Get("owner"); v != "" {
		base.Owner = model.Owner(v)
	}
	if q.Has("search") {
		base.Search = q.Get("search")
	}
	if q.Has("tags") {
		base.Tags = nil
		for _, tag := range strings.Split(q.Get("tags"), ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				base.Tags = append(base.Tags, tag)
			}
		}
	}

	return base
}
