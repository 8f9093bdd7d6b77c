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
	"github.com/campus-desk/caseinbox/pkg/utils/async"
)

// BulkUseCase applies one mutation to a batch of cases. The whole batch is
// validated before anything is written, applied optimistically to the
// session overlay, persisted in a single atomic BatchUpdate, and rolled back
// from the overlay if persistence fails. Success clears the selection.
type BulkUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// Assign sets the assignee on every case. A nil assignee unassigns.
func (uc *BulkUseCase) Assign(ctx context.Context, sess *model.Session, ids []types.CaseID, assignee *types.AgentID) ([]*model.Case, error) {
	if assignee != nil {
		if _, err := uc.repo.Agent().Get(ctx, *assignee); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, goerr.Wrap(ErrAgentNotFound, "assignee does not exist", goerr.V("agent_id", *assignee))
			}
			return nil, goerr.Wrap(err, "failed to look up assignee")
		}
	}

	return uc.apply(ctx, sess, ids, types.ActionAssign, func(c *model.Case) {
		if assignee == nil {
			c.Assignee = nil
			return
		}
		id := *assignee
		c.Assignee = &id
	})
}

// SetStatus moves every case to the given status. Completion timestamps
// follow the transition: entering Resolved/Closed stamps the matching
// timestamp, reopening clears both.
func (uc *BulkUseCase) SetStatus(ctx context.Context, sess *model.Session, ids []types.CaseID, status types.Status) ([]*model.Case, error) {
	if !status.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "unknown status", goerr.V("status", status))
	}

	now := uc.now()
	return uc.apply(ctx, sess, ids, types.ActionStatus, func(c *model.Case) {
		c.Status = status
		switch status {
		case types.StatusResolved:
			t := now
			c.ResolvedAt = &t
		case types.StatusClosed:
			t := now
			c.ClosedAt = &t
		default:
			c.ResolvedAt = nil
			c.ClosedAt = nil
		}
	})
}

// SetPriority sets the priority on every case
func (uc *BulkUseCase) SetPriority(ctx context.Context, sess *model.Session, ids []types.CaseID, priority types.Priority) ([]*model.Case, error) {
	if !priority.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "unknown priority", goerr.V("priority", priority))
	}

	return uc.apply(ctx, sess, ids, types.ActionPriority, func(c *model.Case) {
		c.Priority = priority
	})
}

// AddTag adds the tag to every case that does not already carry it
func (uc *BulkUseCase) AddTag(ctx context.Context, sess *model.Session, ids []types.CaseID, tag string) ([]*model.Case, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, goerr.Wrap(ErrValidation, "tag cannot be empty")
	}

	return uc.apply(ctx, sess, ids, types.ActionTag, func(c *model.Case) {
		if !c.HasTag(tag) {
			c.Tags = append(c.Tags, tag)
		}
	})
}

func (uc *BulkUseCase) apply(ctx context.Context, sess *model.Session, ids []types.CaseID, action types.ActionType, mutate func(c *model.Case)) ([]*model.Case, error) {
	if len(ids) == 0 {
		return nil, goerr.Wrap(ErrValidation, "no cases selected")
	}
	ids = dedupeCaseIDs(ids)

	// Resolve the whole batch first: one unknown id fails the operation
	// before anything is staged or written.
	cases, err := uc.repo.Case().GetBatch(ctx, ids)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(errors.Join(ErrCaseNotFound, err), "batch contains unknown case")
		}
		return nil, goerr.Wrap(err, "failed to load cases")
	}
	for _, c := range cases {
		if c.IsMergedAway() {
			return nil, goerr.Wrap(ErrValidation, "case was merged into another case",
				goerr.V("case_id", c.ID), goerr.V("merged_into", *c.MergedInto))
		}
	}

	now := uc.now()
	updates := make([]*model.Case, 0, len(cases))
	type staged struct {
		id   types.CaseID
		prev *model.Case
	}
	var stagedEntries []staged

	for _, c := range cases {
		updated := c.Clone()
		mutate(updated)
		updated.UpdatedAt = now
		updates = append(updates, updated)

		if sess != nil {
			prev := sess.Stage(updated)
			stagedEntries = append(stagedEntries, staged{id: updated.ID, prev: prev})
		}
	}

	confirmed, err := uc.repo.Case().BatchUpdate(ctx, updates)
	if err != nil {
		// Roll back the optimistic overlay; queries see pre-mutation state
		// again.
		if sess != nil {
			for _, s := range stagedEntries {
				sess.Restore(s.id, s.prev)
			}
		}
		return nil, goerr.Wrap(errors.Join(ErrBulkActionFailed, err), "bulk update rejected",
			goerr.V("action", action), goerr.V("case_count", len(ids)))
	}

	if sess != nil {
		sess.Unstage(ids...)
		sess.Selection.Clear()
	}

	uc.audit(ctx, sess, action, ids, nil)

	return confirmed, nil
}

// audit writes the trail entry off the request path; a failed audit write
// never fails the mutation it records.
func (uc *BulkUseCase) audit(ctx context.Context, sess *model.Session, action types.ActionType, ids []types.CaseID, primary *types.CaseID) {
	rec := &model.AuditRecord{
		ID:            uuid.NewString(),
		Type:          action,
		CaseIDs:       ids,
		PerformedAt:   uc.now(),
		PrimaryCaseID: primary,
	}
	if sess != nil {
		rec.Actor = sess.AgentID
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := uc.repo.Audit().Put(ctx, rec); err != nil {
			return goerr.Wrap(err, "failed to write audit record", goerr.V("audit_id", rec.ID))
		}
		return nil
	})
}
