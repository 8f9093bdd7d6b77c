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

type savedViewRepository struct {
	mu    sync.RWMutex
	views map[types.ViewID]*model.SavedView
}

func newSavedViewRepository() *savedViewRepository {
	return &savedViewRepository{
		views: make(map[types.ViewID]*model.SavedView),
	}
}

func (r *savedViewRepository) Put(ctx context.Context, view *model.SavedView) error {
	if err := view.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid saved view")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.views[view.ID] = view.Clone()
	return nil
}

func (r *savedViewRepository) Get(ctx context.Context, id types.ViewID) (*model.SavedView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	view, exists := r.views[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "saved view not found", goerr.V("id", id))
	}
	return view.Clone(), nil
}

func (r *savedViewRepository) ListByOwner(ctx context.Context, owner types.AgentID) ([]*model.SavedView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.SavedView
	for _, view := range r.views {
		if view.OwnerID == owner {
			out = append(out, view.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *savedViewRepository) Delete(ctx context.Context, id types.ViewID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.views[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "saved view not found", goerr.V("id", id))
	}
	delete(r.views, id)
	return nil
}

// SetDefault flips the default flag to the named view and clears it on every
// other view of the same owner, under one lock so the exclusivity invariant
// holds at all times.
func (r *savedViewRepository) SetDefault(ctx context.Context, owner types.AgentID, id types.ViewID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, exists := r.views[id]
	if !exists || target.OwnerID != owner {
		return goerr.Wrap(interfaces.ErrNotFound, "saved view not found", goerr.V("id", id), goerr.V("owner", owner))
	}

	for _, view := range r.views {
		if view.OwnerID == owner {
			view.IsDefault = view.ID == id
		}
	}
	return nil
}
