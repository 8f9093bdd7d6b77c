package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// ticketNumberBase seeds ticket numbering so generated identities look like
// production ones (TKT-20250001, ...).
const ticketNumberBase = 20250000

type caseRepository struct {
	mu      sync.RWMutex
	cases   map[types.CaseID]*model.Case
	nextSeq int64
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases:   make(map[types.CaseID]*model.Case),
		nextSeq: 1,
	}
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := c.Clone()
	if created.ID == "" {
		seq := ticketNumberBase + r.nextSeq
		created.ID = types.CaseID(fmt.Sprintf("CASE-%08d", seq))
		created.TicketNumber = types.TicketNumber(fmt.Sprintf("TKT-%08d", seq))
	}
	if _, exists := r.cases[created.ID]; exists {
		return nil, goerr.New("case already exists", goerr.V("id", created.ID))
	}
	r.nextSeq++
	created.Version = 1

	r.cases[created.ID] = created
	return created.Clone(), nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
	}
	return c.Clone(), nil
}

func (r *caseRepository) GetBatch(ctx context.Context, ids []types.CaseID) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Case, 0, len(ids))
	for _, id := range ids {
		c, exists := r.cases[id]
		if !exists {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
		}
		out = append(out, c.Clone())
	}
	return out, nil
}

func (r *caseRepository) List(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	cfg := interfaces.BuildListCaseConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.Case, 0, len(r.cases))
	for _, c := range r.cases {
		if dept := cfg.Department(); dept != nil && c.Department != *dept {
			continue
		}
		if assignee := cfg.Assignee(); assignee != nil {
			if c.Assignee == nil || *c.Assignee != *assignee {
				continue
			}
		}
		if cfg.OpenOnly() && c.Status.IsCompleted() {
			continue
		}
		cases = append(cases, c.Clone())
	}
	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated, err := r.stageUpdate(c)
	if err != nil {
		return nil, err
	}
	r.cases[updated.ID] = updated
	return updated.Clone(), nil
}

// BatchUpdate stages every write before committing any, so a conflict or
// missing record leaves the store untouched. Every entry is validated
// against the stored state, not against earlier entries of the same batch;
// should a batch carry the same id twice, the last entry wins.
func (r *caseRepository) BatchUpdate(ctx context.Context, cases []*model.Case) ([]*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		updated, err := r.stageUpdate(c)
		if err != nil {
			return nil, err
		}
		staged = append(staged, updated)
	}

	out := make([]*model.Case, 0, len(staged))
	for _, updated := range staged {
		r.cases[updated.ID] = updated
		out = append(out, updated.Clone())
	}
	return out, nil
}

// stageUpdate validates c against the stored state and returns the record
// as it would be written, without writing it. Assumes the write lock is held.
func (r *caseRepository) stageUpdate(c *model.Case) (*model.Case, error) {
	existing, exists := r.cases[c.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", c.ID))
	}
	if existing.Version != c.Version {
		return nil, goerr.Wrap(interfaces.ErrConflict, "case was modified concurrently",
			goerr.V("id", c.ID),
			goerr.V("stored_version", existing.Version),
			goerr.V("submitted_version", c.Version))
	}

	updated := c.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.TicketNumber = existing.TicketNumber
	updated.Version = existing.Version + 1
	return updated, nil
}
