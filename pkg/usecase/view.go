package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// ViewUseCase manages saved view presets. Each agent owns their views; at
// most one of them is the default.
type ViewUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// ViewInput is the caller-supplied part of a saved view
type ViewInput struct {
	Name    string
	Filters model.FilterSet
	Sort    types.SortMode
	Columns []string
}

func (in *ViewInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return goerr.Wrap(ErrValidation, "view name is required")
	}
	if in.Sort == "" {
		in.Sort = types.SortSLAAsc
	}
	if !in.Sort.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown sort mode", goerr.V("sort", in.Sort))
	}
	return nil
}

// Create stores a new view owned by the agent
func (uc *ViewUseCase) Create(ctx context.Context, owner types.AgentID, in ViewInput) (*model.SavedView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	view := &model.SavedView{
		ID:        types.ViewID(uuid.NewString()),
		Name:      strings.TrimSpace(in.Name),
		Filters:   in.Filters,
		Sort:      in.Sort,
		Columns:   append([]string{}, in.Columns...),
		OwnerID:   owner,
		CreatedAt: uc.now(),
	}

	if err := uc.repo.SavedView().Put(ctx, view); err != nil {
		return nil, goerr.Wrap(err, "failed to store view", goerr.V("view_id", view.ID))
	}
	return view, nil
}

// Update replaces the named view's contents; ownership and the default flag
// are unaffected.
func (uc *ViewUseCase) Update(ctx context.Context, owner types.AgentID, id types.ViewID, in ViewInput) (*model.SavedView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	view, err := uc.ownedView(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	view.Name = strings.TrimSpace(in.Name)
	view.Filters = in.Filters
	view.Sort = in.Sort
	view.Columns = append([]string{}, in.Columns...)

	if err := uc.repo.SavedView().Put(ctx, view); err != nil {
		return nil, goerr.Wrap(err, "failed to store view", goerr.V("view_id", id))
	}
	return view, nil
}

// Delete removes the view. If it was the session's active view, the session
// falls back to the built-in default filters.
func (uc *ViewUseCase) Delete(ctx context.Context, sess *model.Session, id types.ViewID) error {
	if sess == nil {
		return goerr.Wrap(ErrValidation, "session is required")
	}

	if _, err := uc.ownedView(ctx, sess.AgentID, id); err != nil {
		return err
	}

	if err := uc.repo.SavedView().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete view", goerr.V("view_id", id))
	}

	if sess.ActiveViewID == id {
		sess.ActiveViewID = ""
		sess.SetFilters(model.DefaultFilters())
	}
	return nil
}

// SetDefault makes the view the owner's default, clearing the flag on every
// other view of the same owner.
func (uc *ViewUseCase) SetDefault(ctx context.Context, owner types.AgentID, id types.ViewID) error {
	if err := uc.repo.SavedView().SetDefault(ctx, owner, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrViewNotFound, "view does not exist", goerr.V("view_id", id))
		}
		return goerr.Wrap(err, "failed to set default view", goerr.V("view_id", id))
	}
	return nil
}

// List returns the agent's views
func (uc *ViewUseCase) List(ctx context.Context, owner types.AgentID) ([]*model.SavedView, error) {
	views, err := uc.repo.SavedView().ListByOwner(ctx, owner)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list views", goerr.V("owner", owner))
	}
	return views, nil
}

// Apply activates the view on the session: its filters become the session
// filters and it becomes the active view.
func (uc *ViewUseCase) Apply(ctx context.Context, sess *model.Session, id types.ViewID) (*model.SavedView, error) {
	if sess == nil {
		return nil, goerr.Wrap(ErrValidation, "session is required")
	}

	view, err := uc.ownedView(ctx, sess.AgentID, id)
	if err != nil {
		return nil, err
	}

	sess.ActiveViewID = view.ID
	sess.SetFilters(view.Filters)
	return view, nil
}

func (uc *ViewUseCase) ownedView(ctx context.Context, owner types.AgentID, id types.ViewID) (*model.SavedView, error) {
	view, err := uc.repo.SavedView().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrViewNotFound, "view does not exist", goerr.V("view_id", id))
		}
		return nil, goerr.Wrap(err, "failed to load view", goerr.V("view_id", id))
	}
	if view.OwnerID != owner {
		return nil, goerr.Wrap(ErrViewNotFound, "view does not exist", goerr.V("view_id", id))
	}
	return view, nil
}
