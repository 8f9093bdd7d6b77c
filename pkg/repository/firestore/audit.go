package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
)

type auditRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.AuditRepository = &auditRepository{}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{client: client}
}

func (r *auditRepository) auditCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_audit_records"
	}
	return "audit_records"
}

func (r *auditRepository) Put(ctx context.Context, rec *model.AuditRecord) error {
	if rec.ID == "" {
		return goerr.New("audit record ID is required")
	}

	ref := r.client.Collection(r.auditCollection()).Doc(rec.ID)
	if _, err := ref.Set(ctx, rec); err != nil {
		return goerr.Wrap(err, "failed to save audit record", goerr.V("id", rec.ID))
	}
	return nil
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]*model.AuditRecord, error) {
	query := r.client.Collection(r.auditCollection()).
		OrderBy("PerformedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []*model.AuditRecord
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audit records")
		}

		var rec model.AuditRecord
		if err := docSnap.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode audit record", goerr.V("doc_id", docSnap.Ref.ID))
		}
		out = append(out, &rec)
	}

	return out, nil
}
