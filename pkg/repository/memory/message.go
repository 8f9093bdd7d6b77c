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

type messageRepository struct {
	mu       sync.RWMutex
	messages map[types.MessageID]*model.CaseMessage
}

func newMessageRepository() *messageRepository {
	return &messageRepository{
		messages: make(map[types.MessageID]*model.CaseMessage),
	}
}

func (r *messageRepository) Put(ctx context.Context, msg *model.CaseMessage) error {
	if msg.ID == "" {
		return goerr.New("message ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[msg.ID] = msg.Clone()
	return nil
}

func (r *messageRepository) ListByCase(ctx context.Context, caseID types.CaseID) ([]*model.CaseMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.CaseMessage
	for _, msg := range r.messages {
		if msg.CaseID == caseID {
			out = append(out, msg.Clone())
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

func (r *messageRepository) MoveToCase(ctx context.Context, ids []types.MessageID, to types.CaseID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if _, exists := r.messages[id]; !exists {
			return goerr.Wrap(interfaces.ErrNotFound, "message not found", goerr.V("id", id))
		}
	}
	for _, id := range ids {
		r.messages[id].CaseID = to
	}
	return nil
}
