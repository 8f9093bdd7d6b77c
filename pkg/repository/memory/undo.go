package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

type undoRepository struct {
	mu      sync.RWMutex
	records map[types.MergeID]*model.UndoRecord
}

func newUndoRepository() *undoRepository {
	return &undoRepository{
		records: make(map[types.MergeID]*model.UndoRecord),
	}
}

func (r *undoRepository) Put(ctx context.Context, rec *model.UndoRecord) error {
	if err := rec.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid undo record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.ID] = rec.Clone()
	return nil
}

func (r *undoRepository) Get(ctx context.Context, id types.MergeID) (*model.UndoRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "undo record not found", goerr.V("id", id))
	}
	return rec.Clone(), nil
}

func (r *undoRepository) Delete(ctx context.Context, id types.MergeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "undo record not found", goerr.V("id", id))
	}
	delete(r.records, id)
	return nil
}
