package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/model/config"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

const (
	defaultPerPage = 50
	maxPerPage     = 200
)

// InboxUseCase answers queue queries: filter, sort, paginate. It never
// mutates anything.
type InboxUseCase struct {
	repo      interfaces.Repository
	slaPolicy *config.SLAPolicy
	now       func() time.Time
}

// InboxQuery is one inbox page request. Zero values fall back to page 1,
// 50 per page, and SLA-ascending order.
type InboxQuery struct {
	Filters model.FilterSet
	Sort    types.SortMode
	Page    int
	PerPage int
}

// InboxPage is one page of the queue plus pagination metadata. GeneratedAt
// is the instant every SLA in the page was evaluated at.
type InboxPage struct {
	Cases       []model.CaseView
	Page        int
	PerPage     int
	TotalCount  int
	TotalPages  int
	GeneratedAt time.Time
}

// List runs one inbox query for the session's agent. Merged-away cases are
// never returned; cases staged in the session's overlay are shown in their
// staged form.
func (uc *InboxUseCase) List(ctx context.Context, sess *model.Session, q InboxQuery) (*InboxPage, error) {
	if q.Sort == "" {
		q.Sort = types.SortSLAAsc
	}
	if !q.Sort.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "unknown sort mode", goerr.V("sort", q.Sort))
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}

	// An owner filter that pins one agent is pushed down to storage so a
	// backend with an assignee index does the narrowing. Skipped while the
	// session holds staged mutations: a staged reassignment would be
	// filtered on its stored, pre-mutation assignee.
	var listOpts []interfaces.ListCaseOption
	if sess == nil || !sess.HasOverlay() {
		owner := q.Filters.Owner
		if owner == model.OwnerMe && sess != nil {
			owner = model.OwnerAgent(sess.AgentID)
		}
		if id, ok := owner.AgentID(); ok {
			listOpts = append(listOpts, interfaces.WithAssignee(id))
		}
	}

	cases, err := uc.repo.Case().List(ctx, listOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}

	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "inbox query cancelled")
	}

	var me types.AgentID
	if sess != nil {
		me = sess.AgentID
	}
	now := uc.now()

	views := make([]model.CaseView, 0, len(cases))
	for _, c := range cases {
		if sess != nil {
			c = sess.Resolve(c)
		}
		if c.IsMergedAway() {
			continue
		}

		sla := model.ComputeSLA(uc.slaPolicy, c, now)
		if !q.Filters.Matches(c, sla, me) {
			continue
		}
		views = append(views, model.CaseView{Case: c, SLA: sla})
	}

	model.SortCaseViews(views, q.Sort)

	total := len(views)
	totalPages := (total + q.PerPage - 1) / q.PerPage

	start := (q.Page - 1) * q.PerPage
	end := start + q.PerPage
	switch {
	case start >= total:
		views = []model.CaseView{}
	case end > total:
		views = views[start:total]
	default:
		views = views[start:end]
	}

	return &InboxPage{
		Cases:       views,
		Page:        q.Page,
		PerPage:     q.PerPage,
		TotalCount:  total,
		TotalPages:  totalPages,
		GeneratedAt: now,
	}, nil
}
