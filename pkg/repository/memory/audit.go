package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type auditRepository struct {
	mu      sync.RWMutex
	records []*model.AuditRecord
}

func newAuditRepository() *auditRepository {
	return &auditRepository{}
}

func (r *auditRepository) Put(ctx context.Context, rec *model.AuditRecord) error {
	if rec.ID == "" {
		return goerr.New("audit record ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rec
	if rec.CaseIDs != nil {
		stored.CaseIDs = make([]types.CaseID, len(rec.CaseIDs))
		copy(stored.CaseIDs, rec.CaseIDs)
	}
	r.records = append(r.records, &stored)
	return nil
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]*model.AuditRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}

	out := make([]*model.AuditRecord, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		copied := *r.records[i]
		out = append(out, &copied)
	}
	return out, nil
}
