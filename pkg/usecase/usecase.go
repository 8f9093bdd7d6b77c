package usecase

import (
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model/config"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// dedupeCaseIDs drops repeated ids while keeping first-seen order. Callers
// that fan a batch out to storage rely on this so a repeated id never turns
// into two writes against the same record.
func dedupeCaseIDs(ids []types.CaseID) []types.CaseID {
	seen := make(map[types.CaseID]struct{}, len(ids))
	out := make([]types.CaseID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// UseCases bundles the engine's entry points behind one constructor so the
// HTTP controller and CLI wire a single value.
type UseCases struct {
	repo      interfaces.Repository
	slaPolicy *config.SLAPolicy
	now       func() time.Time

	Inbox  *InboxUseCase
	Bulk   *BulkUseCase
	Merge  *MergeUseCase
	Split  *SplitUseCase
	Views  *ViewUseCase
	Agents *AgentUseCase
}

type Option func(*UseCases)

// WithSLAPolicy replaces the built-in SLA hour table
func WithSLAPolicy(policy *config.SLAPolicy) Option {
	return func(uc *UseCases) {
		uc.slaPolicy = policy
	}
}

// WithClock replaces the engine clock. Deadlines, undo windows, and
// UpdatedAt stamps all come from this single clock.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		slaPolicy: config.DefaultSLAPolicy(),
		now:       func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Inbox = &InboxUseCase{repo: repo, slaPolicy: uc.slaPolicy, now: uc.now}
	uc.Bulk = &BulkUseCase{repo: repo, now: uc.now}
	uc.Merge = &MergeUseCase{repo: repo, now: uc.now}
	uc.Split = &SplitUseCase{repo: repo, now: uc.now}
	uc.Views = &ViewUseCase{repo: repo, now: uc.now}
	uc.Agents = &AgentUseCase{repo: repo}

	return uc
}
