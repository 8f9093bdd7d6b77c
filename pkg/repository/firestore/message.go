package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type messageRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.CaseMessageRepository = &messageRepository{}

func newMessageRepository(client *firestore.Client) *messageRepository {
	return &messageRepository{client: client}
}

func (r *messageRepository) messagesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_case_messages"
	}
	return "case_messages"
}

func (r *messageRepository) Put(ctx context.Context, msg *model.CaseMessage) error {
	if msg.ID == "" {
		return goerr.New("message ID is required")
	}

	ref := r.client.Collection(r.messagesCollection()).Doc(string(msg.ID))
	if _, err := ref.Set(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to save case message",
			goerr.V("message_id", msg.ID),
			goerr.V("case_id", msg.CaseID))
	}
	return nil
}

func (r *messageRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.CaseMessage, error) {
	iter := r.client.Collection(r.messagesCollection()).
		Where("CaseID", "==", string(caseID)).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var out []*model.CaseMessage
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate case messages", goerr.V("case_id", caseID))
		}

		var msg model.CaseMessage
		if err := docSnap.DataTo(&msg); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case message", goerr.V("doc_id", docSnap.Ref.ID))
		}
		out = append(out, &msg)
	}

	return out, nil
}

func (r *messageRepository) MoveToCase(ctx context.Context, ids []types.MessageID, to types.CaseID) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		refs := make([]*firestore.DocumentRef, 0, len(ids))
		for _, id := range ids {
			ref := r.client.Collection(r.messagesCollection()).Doc(string(id))
			docSnap, err := tx.Get(ref)
			if err != nil || !docSnap.Exists() {
				return goerr.Wrap(interfaces.ErrNotFound, "message not found", goerr.V("id", id))
			}
			refs = append(refs, ref)
		}

		for _, ref := range refs {
			if err := tx.Update(ref, []firestore.Update{
				{Path: "CaseID", Value: string(to)},
			}); err != nil {
				return goerr.Wrap(err, "failed to move message", goerr.V("doc_id", ref.ID))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
