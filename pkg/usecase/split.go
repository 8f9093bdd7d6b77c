package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/utils/async"
)

// SplitUseCase carves a contiguous run of messages out of a case into a new
// case, typically to route a second concern to the right department. A
// split is deliberately not undoable: the two cases are independently
// workable the moment the split lands, and merging them back is always
// possible through the merge flow.
type SplitUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// SplitResult describes one performed split
type SplitResult struct {
	Source  *model.Case
	NewCase *model.Case
}

// Split moves messageIDs from caseID into a fresh case in the given
// department. The ids must form a contiguous run of the source's
// conversation and must leave at least one message behind. An empty subject
// inherits the source's subject.
func (uc *SplitUseCase) Split(ctx context.Context, sess *model.Session, caseID types.CaseID, messageIDs []types.MessageID, dept types.Department, subject string) (*SplitResult, error) {
	if len(messageIDs) == 0 {
		return nil, goerr.Wrap(ErrValidation, "no messages selected for split")
	}
	if !dept.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "unknown department", goerr.V("department", dept))
	}

	source, err := uc.repo.Case().Get(ctx, caseID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(errors.Join(ErrCaseNotFound, err), "unknown case", goerr.V("case_id", caseID))
		}
		return nil, goerr.Wrap(err, "failed to load case", goerr.V("case_id", caseID))
	}
	if source.IsMergedAway() {
		return nil, goerr.Wrap(ErrValidation, "cannot split a merged-away case", goerr.V("case_id", caseID))
	}

	msgs, err := uc.repo.CaseMessage().ListByCase(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load case messages", goerr.V("case_id", caseID))
	}

	moved, err := contiguousRun(msgs, messageIDs)
	if err != nil {
		return nil, err
	}
	if len(msgs)-len(moved) < 1 {
		return nil, goerr.Wrap(ErrValidation, "split must leave at least one message in the source case")
	}

	now := uc.now()
	if subject == "" {
		subject = source.Subject
	}

	newCase := &model.Case{
		Department:         dept,
		Subject:            subject,
		Requester:          source.Requester,
		Priority:           source.Priority,
		Status:             types.StatusOpen,
		Channel:            source.Channel,
		Tags:               append([]string{}, source.Tags...),
		MessageCount:       len(moved),
		LastMessagePreview: preview(moved[len(moved)-1].Body),
		CreatedAt:          now,
		UpdatedAt:          now,
		SplitFrom:          &source.TicketNumber,
	}

	created, err := uc.repo.Case().Create(ctx, newCase)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create split case")
	}

	if err := uc.repo.CaseMessage().MoveToCase(ctx, messageIDs, created.ID); err != nil {
		return nil, goerr.Wrap(err, "failed to move messages to split case",
			goerr.V("case_id", caseID), goerr.V("new_case_id", created.ID))
	}

	// Forward-reference note so the source conversation records where the
	// rest of it went. The note must sort after every remaining message,
	// so nudge its timestamp past the conversation's newest entry when the
	// clock has not moved since that message arrived.
	noteAt := now
	if last := msgs[len(msgs)-1].CreatedAt; !noteAt.After(last) {
		noteAt = last.Add(time.Microsecond)
	}
	note := &model.CaseMessage{
		ID:     types.MessageID(uuid.NewString()),
		CaseID: source.ID,
		Author: model.MessageAuthor{Name: "system", Role: model.AuthorSystem},
		Body: fmt.Sprintf("%d messages split into %s (%s)",
			len(moved), created.TicketNumber, created.Department),
		CreatedAt: noteAt,
	}
	if err := uc.repo.CaseMessage().Put(ctx, note); err != nil {
		return nil, goerr.Wrap(err, "failed to record split note", goerr.V("case_id", caseID))
	}

	updatedSource := source.Clone()
	updatedSource.MessageCount = updatedSource.MessageCount - len(moved) + 1 // note replaces the moved run
	updatedSource.SplitInto = &created.TicketNumber
	updatedSource.UpdatedAt = now

	confirmedSource, err := uc.repo.Case().Update(ctx, updatedSource)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update source case", goerr.V("case_id", caseID))
	}

	uc.audit(ctx, sess, []types.CaseID{source.ID, created.ID}, &created.ID)

	return &SplitResult{Source: confirmedSource, NewCase: created}, nil
}

// contiguousRun verifies that ids form one unbroken run of msgs (in
// conversation order) and returns the run's messages.
func contiguousRun(msgs []*model.CaseMessage, ids []types.MessageID) ([]*model.CaseMessage, error) {
	want := make(map[types.MessageID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	start := -1
	for i, msg := range msgs {
		if want[msg.ID] {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, goerr.Wrap(ErrValidation, "messages do not belong to the case")
	}
	if start+len(want) > len(msgs) {
		return nil, goerr.Wrap(ErrValidation, "messages are not a contiguous run")
	}

	run := msgs[start : start+len(want)]
	for _, msg := range run {
		if !want[msg.ID] {
			return nil, goerr.Wrap(ErrValidation, "messages are not a contiguous run",
				goerr.V("unexpected_message", msg.ID))
		}
	}
	return run, nil
}

func preview(body string) string {
	const max = 120
	if len(body) <= max {
		return body
	}
	return body[:max]
}

func (uc *SplitUseCase) audit(ctx context.Context, sess *model.Session, ids []types.CaseID, primary *types.CaseID) {
	rec := &model.AuditRecord{
		ID:            uuid.NewString(),
		Type:          types.ActionSplit,
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
