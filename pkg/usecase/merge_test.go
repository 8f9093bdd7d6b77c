package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	uc "github.com/campus-desk/caseinbox/pkg/usecase"
)

func TestMergeConsolidatesIntoPrimary(t *testing.T) {
	engine, repo, _ := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	primary := seedCase(t, repo, func(c *model.Case) {
		c.Subject = "Wifi down"
		c.Tags = []string{"network"}
		c.MessageCount = 2
	})
	dup := seedCase(t, repo, func(c *model.Case) {
		c.Subject = "Internet not working"
		c.Tags = []string{"wifi", "network"}
		c.MessageCount = 3
		c.CreatedAt = testEpoch.Add(time.Minute)
	})
	seedMessages(t, repo, primary.ID, 2, testEpoch)
	seedMessages(t, repo, dup.ID, 3, testEpoch.Add(30*time.Second))

	sess.Selection.Toggle(primary.ID)
	sess.Selection.Toggle(dup.ID)

	res, err := engine.Merge.Merge(ctx, sess, primary.ID, []types.CaseID{dup.ID})
	gt.NoError(t, err).Required()

	gt.Value(t, res.Primary.MessageCount).Equal(5)
	gt.Array(t, res.Primary.MergedCases).Equal([]types.CaseID{dup.ID})
	gt.Array(t, res.Primary.Tags).Equal([]string{"network", "wifi"})
	gt.Value(t, res.Primary.TicketNumber).Equal(primary.TicketNumber)
	gt.Bool(t, res.Primary.CreatedAt.Equal(primary.CreatedAt)).True()
	gt.Number(t, sess.Selection.Len()).Equal(0)

	// absorbed case points at the primary
	away, err := repo.Case().Get(ctx, dup.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, away.IsMergedAway()).True()
	gt.Value(t, *away.MergedInto).Equal(primary.ID)

	// timeline interleaves both conversations in timestamp order with
	// provenance on the absorbed side
	gt.Array(t, res.Timeline).Length(7) // 2 creation + 5 messages
	var last time.Time
	fromDup := 0
	for _, ev := range res.Timeline {
		gt.Bool(t, ev.Timestamp.Before(last)).False()
		last = ev.Timestamp
		if ev.FromTicket != "" {
			gt.Value(t, ev.FromTicket).Equal(dup.TicketNumber)
			fromDup++
		}
	}
	gt.Number(t, fromDup).Equal(4) // dup creation + 3 dup messages
}

func TestMergeValidations(t *testing.T) {
	engine, repo, _ := newTestEngine(t)
	ctx := context.Background()

	primary := seedCase(t, repo, nil)
	dup := seedCase(t, repo, nil)

	t.Run("needs at least two cases", func(t *testing.T) {
		_, err := engine.Merge.Merge(ctx, nil, primary.ID, nil)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, uc.ErrValidation)).True()
	})

	t.Run("cannot merge into itself", func(t *testing.T) {
		_, err := engine.Merge.Merge(ctx, nil, primary.ID, []types.CaseID{primary.ID})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, uc.ErrValidation)).True()
	})

	t.Run("primary must be selected when a session is given", func(t *testing.T) {
		sess := model.NewSession("agent-001")
		sess.Selection.Toggle(dup.ID)

		_, err := engine.Merge.Merge(ctx, sess, primary.ID, []types.CaseID{dup.ID})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, uc.ErrValidation)).True()
	})

	t.Run("unknown case fails the merge", func(t *testing.T) {
		_, err := engine.Merge.Merge(ctx, nil, primary.ID, []types.CaseID{"CASE-99999999"})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, uc.ErrCaseNotFound)).True()
	})

	t.Run("already merged-away case cannot merge again", func(t *testing.T) {
		_, err := engine.Merge.Merge(ctx, nil, primary.ID, []types.CaseID{dup.ID})
		gt.NoError(t, err).Required()

		third := seedCase(t, repo, nil)
		_, err = engine.Merge.Merge(ctx, nil, third.ID, []types.CaseID{dup.ID})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, uc.ErrValidation)).True()
	})
}

func TestMergeUndoRestoresPreMergeState(t *testing.T) {
	engine, repo, clock := newTestEngine(t)
	ctx := context.Background()

	primary := seedCase(t, repo, func(c *model.Case) {
		c.Tags = []string{"network"}
		c.MessageCount = 2
	})
	dup := seedCase(t, repo, func(c *model.Case) {
		c.Tags = []string{"wifi"}
		c.MessageCount = 3
	})

	res, err := engine.Merge.Merge(ctx, nil, primary.ID, []types.CaseID{dup.ID})
	gt.NoError(t, err).Required()

	clock.Advance(10 * time.Second) // still inside the window

	restored, err := engine.Merge.Undo(ctx, res.UndoID)
	gt.NoError(t, err).Required()

	// primary is field-equal to its pre-merge state (Version aside)
	gt.Value(t, restored.MessageCount).Equal(primary.MessageCount)
	gt.Array(t, restored.Tags).Equal(primary.Tags)
	gt.Array(t, restored.MergedCases).Length(0)
	gt.Bool(t, restored.UpdatedAt.Equal(primary.UpdatedAt)).True()

	// absorbed case is independent again
	back, err := repo.Case().Get(ctx, dup.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, back.IsMergedAway()).False()
	gt.Value(t, back.MessageCount).Equal(dup.MessageCount)

	// the record is consumed; a second undo reports not found
	_, err = engine.Merge.Undo(ctx, res.UndoID)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, uc.ErrUndoNotFound)).True()
}

func TestMergeUndoExpiresAfterWindow(t *testing.T) {
	engine, repo, clock := newTestEngine(t)
	ctx := context.Background()

	primary := seedCase(t, repo, nil)
	dup := seedCase(t, repo, nil)

	res, err := engine.Merge.Merge(ctx, nil, primary.ID, []types.CaseID{dup.ID})
	gt.NoError(t, err).Required()

	clock.Advance(model.MergeUndoWindow)

	_, err = engine.Merge.Undo(ctx, res.UndoID)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, uc.ErrUndoExpired)).True()

	// state stays merged and the record is retained: a retry fails the
	// same way, not with "not found"
	away, err := repo.Case().Get(ctx, dup.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, away.IsMergedAway()).True()

	_, err = engine.Merge.Undo(ctx, res.UndoID)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, uc.ErrUndoExpired)).True()
}

func TestMergeUndoUnknownID(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Merge.Undo(context.Background(), "no-such-merge")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, uc.ErrUndoNotFound)).True()
}

func TestMergeRepeatedDuplicateCountsOnce(t *testing.T) {
	engine, repo, _ := newTestEngine(t)
	ctx := context.Background()
	sess := model.NewSession("agent-001")

	primary := seedCase(t, repo, func(c *model.Case) { c.MessageCount = 2 })
	dup := seedCase(t, repo, func(c *model.Case) { c.MessageCount = 3 })
	sess.Selection.Toggle(primary.ID)
	sess.Selection.Toggle(dup.ID)

	res, err := engine.Merge.Merge(ctx, sess, primary.ID, []types.CaseID{dup.ID, dup.ID})
	gt.NoError(t, err).Required()

	gt.Value(t, res.Primary.MessageCount).Equal(5)
	gt.Array(t, res.Primary.MergedCases).Equal([]types.CaseID{dup.ID})
	gt.Array(t, res.Absorbed).Length(1)
}
