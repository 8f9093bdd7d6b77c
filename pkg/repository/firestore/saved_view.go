package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type savedViewRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.SavedViewRepository = &savedViewRepository{}

func newSavedViewRepository(client *firestore.Client) *savedViewRepository {
	return &savedViewRepository{client: client}
}

func (r *savedViewRepository) viewsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_saved_views"
	}
	return "saved_views"
}

func (r *savedViewRepository) Put(ctx context.Context, view *model.SavedView) error {
	if err := view.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid saved view")
	}

	ref := r.client.Collection(r.viewsCollection()).Doc(string(view.ID))
	if _, err := ref.Set(ctx, view); err != nil {
		return goerr.Wrap(err, "failed to save view", goerr.V("id", view.ID))
	}
	return nil
}

func (r *savedViewRepository) Get(ctx context.Context, id types.ViewID) (*model.SavedView, error) {
	docSnap, err := r.client.Collection(r.viewsCollection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "saved view not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get saved view", goerr.V("id", id))
	}

	var view model.SavedView
	if err := docSnap.DataTo(&view); err != nil {
		return nil, goerr.Wrap(err, "failed to decode saved view", goerr.V("id", id))
	}

	return &view, nil
}

func (r *savedViewRepository) ListByOwner(ctx context.Context, owner types.AgentID) ([]*model.SavedView, error) {
	iter := r.client.Collection(r.viewsCollection()).
		Where("OwnerID", "==", string(owner)).
		Documents(ctx)
	defer iter.Stop()

	var out []*model.SavedView
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate saved views", goerr.V("owner", owner))
		}

		var view model.SavedView
		if err := docSnap.DataTo(&view); err != nil {
			return nil, goerr.Wrap(err, "failed to decode saved view", goerr.V("doc_id", docSnap.Ref.ID))
		}
		out = append(out, &view)
	}

	return out, nil
}

func (r *savedViewRepository) Delete(ctx context.Context, id types.ViewID) error {
	docRef := r.client.Collection(r.viewsCollection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "saved view not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check saved view existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete saved view", goerr.V("id", id))
	}
	return nil
}

// SetDefault flips the default flag to the named view and clears it on the
// owner's other views in one transaction, keeping the flag exclusive.
func (r *savedViewRepository) SetDefault(ctx context.Context, owner types.AgentID, id types.ViewID) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := r.client.Collection(r.viewsCollection()).
			Where("OwnerID", "==", string(owner))
		docSnaps, err := tx.Documents(query).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to list saved views", goerr.V("owner", owner))
		}

		found := false
		for _, docSnap := range docSnaps {
			if docSnap.Ref.ID == string(id) {
				found = true
				break
			}
		}
		if !found {
			return goerr.Wrap(interfaces.ErrNotFound, "saved view not found",
				goerr.V("id", id), goerr.V("owner", owner))
		}

		for _, docSnap := range docSnaps {
			if err := tx.Update(docSnap.Ref, []firestore.Update{
				{Path: "IsDefault", Value: docSnap.Ref.ID == string(id)},
			}); err != nil {
				return goerr.Wrap(err, "failed to update saved view", goerr.V("doc_id", docSnap.Ref.ID))
			}
		}
		return nil
	})
}
