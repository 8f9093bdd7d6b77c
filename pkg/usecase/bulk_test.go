package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	uc "github.com/campus-desk/caseinbox/pkg/usecase"
)

func TestBulkAssignUpdatesBatchAndClearsSelection(t *testing.T) {
	engine, repo, clock := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	seedAgent(t, repo, "agent-002", types.DepartmentIT)
	c1 := seedCase(t, repo, nil)
	c2 := seedCase(t, repo, nil)
	sess.Selection.Toggle(c1.ID)
	sess.Selection.Toggle(c2.ID)

	clock.Advance(10 * time.Minute)

	assignee := types.AgentID("agent-002")
	updated, err := engine.Bulk.Assign(ctx, sess, []types.CaseID{c1.ID, c2.ID}, &assignee)
	gt.NoError(t, err).Required()
	gt.Array(t, updated).Length(2)

	for _, c := range updated {
		gt.Value(t, *c.Assignee).Equal(assignee)
		gt.Bool(t, c.UpdatedAt.After(c.CreatedAt)).True()
		gt.Bool(t, c.CreatedAt.Equal(c1.CreatedAt)).True()
	}
	gt.Number(t, sess.Selection.Len()).Equal(0)

	recs := waitForAudit(t, repo, 1)
	gt.Value(t, recs[0].Type).Equal(types.ActionAssign)
	gt.Value(t, recs[0].Actor).Equal(types.AgentID("agent-001"))
	gt.Array(t, recs[0].CaseIDs).Length(2)
}

func TestBulkAssignUnknownAgentFailsBeforeWrites(t *testing.T) {
	engine, repo, _ := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	c1 := seedCase(t, repo, nil)

	ghost := types.AgentID("agent-404")
	_, err := engine.Bulk.Assign(ctx, sess, []types.CaseID{c1.ID}, &ghost)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, uc.ErrAgentNotFound)).True()

	stored, err := repo.Case().Get(ctx, c1.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.Assignee).Equal(nil)
}

func TestBulkUnknownCaseFailsWholeBatch(t *testing.T) {
	engine, repo, _ := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	c1 := seedCase(t, repo, nil)
	sess.Selection.Toggle(c1.ID)

	_, err := engine.Bulk.SetPriority(ctx, sess, []types.CaseID{c1.ID, "CASE-99999999"}, types.PriorityUrgent)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, uc.ErrCaseNotFound)).True()

	// nothing was written and the selection survives a failed batch
	stored, err := repo.Case().Get(ctx, c1.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.Priority).Equal(types.PriorityNormal)
	gt.Number(t, sess.Selection.Len()).Equal(1)
}

// conflictingRepo decorates a repository so that every BatchUpdate is beaten
// by a concurrent writer, forcing the optimistic check to fail.
type conflictingRepo struct {
	interfaces.Repository
}

func (r *conflictingRepo) Case() interfaces.CaseRepository {
	return &conflictingCaseRepo{CaseRepository: r.Repository.Case()}
}

type conflictingCaseRepo struct {
	interfaces.CaseRepository
}

func (r *conflictingCaseRepo) BatchUpdate(ctx context.Context, cases []*model.Case) ([]*model.Case, error) {
	for _, c := range cases {
		sneak, err := r.CaseRepository.Get(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		sneak.Subject = "touched by someone else"
		if _, err := r.CaseRepository.Update(ctx, sneak); err != nil {
			return nil, err
		}
	}
	return r.CaseRepository.BatchUpdate(ctx, cases)
}

func TestBulkConflictRollsBackOverlay(t *testing.T) {
	_, repo, clock := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	c1 := seedCase(t, repo, nil)
	sess.Selection.Toggle(c1.ID)

	racy := uc.New(&conflictingRepo{Repository: repo}, uc.WithClock(clock.Now))

	_, err := racy.Bulk.SetPriority(ctx, sess, []types.CaseID{c1.ID}, types.PriorityUrgent)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, uc.ErrBulkActionFailed)).True()
	gt.Bool(t, errors.Is(err, interfaces.ErrConflict)).True()

	// overlay was rolled back: the session resolves to the stored case, and
	// the selection survives the failure
	stored, err := repo.Case().Get(ctx, c1.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, sess.Resolve(stored).Priority).Equal(types.PriorityNormal)
	gt.Number(t, sess.Selection.Len()).Equal(1)
}

func TestBulkSetStatusStampsCompletionTimes(t *testing.T) {
	engine, repo, clock := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	c1 := seedCase(t, repo, nil)
	clock.Advance(time.Hour)

	updated, err := engine.Bulk.SetStatus(ctx, sess, []types.CaseID{c1.ID}, types.StatusResolved)
	gt.NoError(t, err).Required()
	gt.Value(t, updated[0].Status).Equal(types.StatusResolved)
	gt.Bool(t, updated[0].ResolvedAt == nil).False()
	gt.Bool(t, updated[0].ResolvedAt.Equal(clock.Now())).True()

	// reopening clears completion stamps
	updated, err = engine.Bulk.SetStatus(ctx, sess, []types.CaseID{c1.ID}, types.StatusOpen)
	gt.NoError(t, err).Required()
	gt.Value(t, updated[0].Status).Equal(types.StatusOpen)
	gt.Bool(t, updated[0].ResolvedAt == nil).True()
	gt.Bool(t, updated[0].ClosedAt == nil).True()
}

func TestBulkAddTagIsIdempotentPerCase(t *testing.T) {
	engine, repo, _ := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	c1 := seedCase(t, repo, func(c *model.Case) { c.Tags = []string{"billing"} })

	updated, err := engine.Bulk.AddTag(ctx, sess, []types.CaseID{c1.ID}, "billing")
	gt.NoError(t, err).Required()
	gt.Array(t, updated[0].Tags).Length(1)

	updated, err = engine.Bulk.AddTag(ctx, sess, []types.CaseID{updated[0].ID}, "urgent-review")
	gt.NoError(t, err).Required()
	gt.Array(t, updated[0].Tags).Length(2)
}

func TestBulkRepeatedIDWritesOnce(t *testing.T) {
	engine, repo, _ := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	c1 := seedCase(t, repo, nil)
	sess.Selection.Toggle(c1.ID)

	// The same case listed twice must collapse to a single write, not a
	// self-inflicted version conflict.
	updated, err := engine.Bulk.SetPriority(ctx, sess, []types.CaseID{c1.ID, c1.ID}, types.PriorityUrgent)
	gt.NoError(t, err).Required()
	gt.Array(t, updated).Length(1)

	stored, err := repo.Case().Get(ctx, c1.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.Priority).Equal(types.PriorityUrgent)
	gt.Value(t, stored.Version).Equal(c1.Version + 1)

	recs := waitForAudit(t, repo, 1)
	gt.Array(t, recs[0].CaseIDs).Length(1)
}

func TestBulkRejectsEmptySelection(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	sess := model.NewSession("agent-001")

	_, err := engine.Bulk.SetPriority(context.Background(), sess, nil, types.PriorityHigh)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, uc.ErrValidation)).True()
}
