package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type undoRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.UndoRepository = &undoRepository{}

func newUndoRepository(client *firestore.Client) *undoRepository {
	return &undoRepository{client: client}
}

func (r *undoRepository) undoCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_undo_records"
	}
	return "undo_records"
}

func (r *undoRepository) Put(ctx context.Context, rec *model.UndoRecord) error {
	if err := rec.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid undo record")
	}

	ref := r.client.Collection(r.undoCollection()).Doc(string(rec.ID))
	if _, err := ref.Set(ctx, rec); err != nil {
		return goerr.Wrap(err, "failed to save undo record", goerr.V("id", rec.ID))
	}
	return nil
}

func (r *undoRepository) Get(ctx context.Context, id types.MergeID) (*model.UndoRecord, error) {
	docSnap, err := r.client.Collection(r.undoCollection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "undo record not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get undo record", goerr.V("id", id))
	}

	var rec model.UndoRecord
	if err := docSnap.DataTo(&rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode undo record", goerr.V("id", id))
	}

	return &rec, nil
}

func (r *undoRepository) Delete(ctx context.Context, id types.MergeID) error {
	docRef := r.client.Collection(r.undoCollection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "undo record not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check undo record existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete undo record", goerr.V("id", id))
	}
	return nil
}
