package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// ticketNumberBase seeds ticket numbering so generated identities look like
// production ones (TKT-20250001, ...).
const ticketNumberBase = 20250000

type caseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.CaseRepository = &caseRepository{}

func newCaseRepository(client *firestore.Client) *caseRepository {
	return &caseRepository{client: client}
}

func (r *caseRepository) casesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_cases"
	}
	return "cases"
}

func (r *caseRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *caseRepository) getNextSeq(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("case_counter")

	var nextSeq int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextSeq = ticketNumberBase + 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextSeq,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		nextSeq = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextSeq},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next sequence")
	}

	return nextSeq, nil
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	created := c.Clone()
	if created.ID == "" {
		seq, err := r.getNextSeq(ctx)
		if err != nil {
			return nil, err
		}
		created.ID = types.CaseID(fmt.Sprintf("CASE-%08d", seq))
		created.TicketNumber = types.TicketNumber(fmt.Sprintf("TKT-%08d", seq))
	}
	created.Version = 1

	docRef := r.client.Collection(r.casesCollection()).Doc(string(created.ID))
	if _, err := docRef.Create(ctx, created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.New("case already exists", goerr.V("id", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create case", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *caseRepository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	docSnap, err := r.client.Collection(r.casesCollection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V("id", id))
	}

	var c model.Case
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V("id", id))
	}

	return &c, nil
}

func (r *caseRepository) GetBatch(ctx context.Context, ids []types.CaseID) ([]*model.Case, error) {
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection(r.casesCollection()).Doc(string(id)))
	}

	docSnaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get cases")
	}

	out := make([]*model.Case, 0, len(docSnaps))
	for _, docSnap := range docSnaps {
		if !docSnap.Exists() {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found",
				goerr.V("id", docSnap.Ref.ID))
		}
		var c model.Case
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc_id", docSnap.Ref.ID))
		}
		out = append(out, &c)
	}

	return out, nil
}

func (r *caseRepository) List(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	cfg := interfaces.BuildListCaseConfig(opts...)

	query := r.client.Collection(r.casesCollection()).Query
	if dept := cfg.Department(); dept != nil {
		query = query.Where("Department", "==", string(*dept))
	}
	if assignee := cfg.Assignee(); assignee != nil {
		query = query.Where("Assignee", "==", string(*assignee))
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var cases []*model.Case
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases")
		}

		var c model.Case
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc_id", docSnap.Ref.ID))
		}

		// status is an in-memory filter: a completed case can have either of
		// two statuses and Firestore has no OR-exclusion query.
		if cfg.OpenOnly() && c.Status.IsCompleted() {
			continue
		}

		cases = append(cases, &c)
	}

	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	out, err := r.BatchUpdate(ctx, []*model.Case{c})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// BatchUpdate writes every case in one transaction after checking each
// stored version, so a conflict or missing record leaves the store
// untouched.
func (r *caseRepository) BatchUpdate(ctx context.Context, cases []*model.Case) ([]*model.Case, error) {
	out := make([]*model.Case, 0, len(cases))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		out = out[:0]
		updates := make([]*model.Case, 0, len(cases))

		// All reads must happen before the first write.
		for _, c := range cases {
			docRef := r.client.Collection(r.casesCollection()).Doc(string(c.ID))
			docSnap, err := tx.Get(docRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", c.ID))
				}
				return goerr.Wrap(err, "failed to get case", goerr.V("id", c.ID))
			}

			var existing model.Case
			if err := docSnap.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to decode case", goerr.V("id", c.ID))
			}
			if existing.Version != c.Version {
				return goerr.Wrap(interfaces.ErrConflict, "case was modified concurrently",
					goerr.V("id", c.ID),
					goerr.V("stored_version", existing.Version),
					goerr.V("submitted_version", c.Version))
			}

			updated := c.Clone()
			updated.CreatedAt = existing.CreatedAt
			updated.TicketNumber = existing.TicketNumber
			updated.Version = existing.Version + 1
			updates = append(updates, updated)
		}

		for _, updated := range updates {
			docRef := r.client.Collection(r.casesCollection()).Doc(string(updated.ID))
			if err := tx.Set(docRef, updated); err != nil {
				return goerr.Wrap(err, "failed to update case", goerr.V("id", updated.ID))
			}
			out = append(out, updated)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
