package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/utils/async"
)

// MergeUseCase folds duplicate cases into one primary and keeps a 30 second
// undo ledger. Messages stay attached to their original cases; the
// consolidated timeline reads across the merge lineage, which is what makes
// undo a pure restore of case fields.
type MergeUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// MergeResult describes one performed merge
type MergeResult struct {
	Primary       *model.Case
	Absorbed      []*model.Case
	Timeline      []model.TimelineEvent
	UndoID        types.MergeID
	UndoExpiresAt time.Time
}

// Merge absorbs mergeIDs into primaryID. When a session is given, the
// primary must be part of the current selection, and the selection is
// cleared on success.
func (uc *MergeUseCase) Merge(ctx context.Context, sess *model.Session, primaryID types.CaseID, mergeIDs []types.CaseID) (*MergeResult, error) {
	if len(mergeIDs) == 0 {
		return nil, goerr.Wrap(ErrValidation, "a merge needs at least two cases")
	}
	mergeIDs = dedupeCaseIDs(mergeIDs)
	for _, id := range mergeIDs {
		if id == primaryID {
			return nil, goerr.Wrap(ErrValidation, "a case cannot be merged into itself", goerr.V("case_id", id))
		}
	}
	if sess != nil && !sess.Selection.Has(primaryID) {
		return nil, goerr.Wrap(ErrValidation, "primary case must be part of the selection", goerr.V("case_id", primaryID))
	}

	allIDs := append([]types.CaseID{primaryID}, mergeIDs...)
	cases, err := uc.repo.Case().GetBatch(ctx, allIDs)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(errors.Join(ErrCaseNotFound, err), "merge references unknown case")
		}
		return nil, goerr.Wrap(err, "failed to load cases for merge")
	}

	primary := cases[0]
	absorbed := cases[1:]
	for _, c := range cases {
		if c.IsMergedAway() {
			return nil, goerr.Wrap(ErrValidation, "case was already merged away",
				goerr.V("case_id", c.ID), goerr.V("merged_into", *c.MergedInto))
		}
	}

	// Pre-merge snapshots for the undo ledger, taken before any mutation.
	primarySnapshot := primary.Clone()
	snapshots := make([]*model.Case, 0, len(absorbed))
	for _, c := range absorbed {
		snapshots = append(snapshots, c.Clone())
	}

	timeline, err := uc.consolidate(ctx, cases, primaryID)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	mergedPrimary := primary.Clone()
	mergedPrimary.MergedCases = append([]types.CaseID{}, mergeIDs...)
	mergedPrimary.Tags = unionTags(cases)
	mergedPrimary.UpdatedAt = now
	for _, c := range absorbed {
		mergedPrimary.MessageCount += c.MessageCount
	}

	updates := []*model.Case{mergedPrimary}
	for _, c := range absorbed {
		away := c.Clone()
		into := primaryID
		away.MergedInto = &into
		away.UpdatedAt = now
		updates = append(updates, away)
	}

	confirmed, err := uc.repo.Case().BatchUpdate(ctx, updates)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist merge", goerr.V("primary_id", primaryID))
	}

	rec := &model.UndoRecord{
		ID:              types.MergeID(uuid.NewString()),
		Type:            types.ActionMerge,
		PrimaryCaseID:   primaryID,
		CaseIDs:         allIDs,
		PerformedAt:     now,
		PrimarySnapshot: primarySnapshot,
		Snapshots:       snapshots,
	}
	if err := uc.repo.Undo().Put(ctx, rec); err != nil {
		// The merge itself is committed; losing the ledger entry only costs
		// the undo option.
		return nil, goerr.Wrap(err, "merge committed but undo record failed", goerr.V("merge_id", rec.ID))
	}

	if sess != nil {
		sess.Selection.Clear()
	}

	uc.audit(ctx, sess, types.ActionMerge, allIDs, &primaryID)

	return &MergeResult{
		Primary:       confirmed[0],
		Absorbed:      confirmed[1:],
		Timeline:      timeline,
		UndoID:        rec.ID,
		UndoExpiresAt: now.Add(model.MergeUndoWindow),
	}, nil
}

// Undo reverses a merge while its window is open. Validity is judged
// against the engine clock; an expired record is kept so a late undo fails
// the same way every time.
func (uc *MergeUseCase) Undo(ctx context.Context, mergeID types.MergeID) (*model.Case, error) {
	rec, err := uc.repo.Undo().Get(ctx, mergeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrUndoNotFound, "unknown merge id", goerr.V("merge_id", mergeID))
		}
		return nil, goerr.Wrap(err, "failed to load undo record", goerr.V("merge_id", mergeID))
	}

	now := uc.now()
	if rec.Expired(now) {
		return nil, goerr.Wrap(ErrUndoExpired, "merge is no longer reversible",
			goerr.V("merge_id", mergeID),
			goerr.V("performed_at", rec.PerformedAt),
			goerr.V("window", model.MergeUndoWindow))
	}

	// Restore snapshots on top of the current stored versions so the
	// optimistic check still guards against concurrent writers.
	current, err := uc.repo.Case().GetBatch(ctx, rec.CaseIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load merged cases", goerr.V("merge_id", mergeID))
	}
	versions := make(map[types.CaseID]int64, len(current))
	for _, c := range current {
		versions[c.ID] = c.Version
	}

	restores := make([]*model.Case, 0, len(rec.Snapshots)+1)
	for _, snap := range append([]*model.Case{rec.PrimarySnapshot}, rec.Snapshots...) {
		restored := snap.Clone()
		restored.Version = versions[restored.ID]
		restores = append(restores, restored)
	}

	confirmed, err := uc.repo.Case().BatchUpdate(ctx, restores)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to restore merged cases", goerr.V("merge_id", mergeID))
	}

	if err := uc.repo.Undo().Delete(ctx, mergeID); err != nil {
		return nil, goerr.Wrap(err, "failed to consume undo record", goerr.V("merge_id", mergeID))
	}

	return confirmed[0], nil
}

// Timeline returns the consolidated history of a merge primary, reading
// across every absorbed case.
func (uc *MergeUseCase) Timeline(ctx context.Context, primaryID types.CaseID) ([]model.TimelineEvent, error) {
	primary, err := uc.repo.Case().Get(ctx, primaryID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(errors.Join(ErrCaseNotFound, err), "unknown case", goerr.V("case_id", primaryID))
		}
		return nil, goerr.Wrap(err, "failed to load case", goerr.V("case_id", primaryID))
	}

	cases := []*model.Case{primary}
	if len(primary.MergedCases) > 0 {
		merged, err := uc.repo.Case().GetBatch(ctx, primary.MergedCases)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load merged cases", goerr.V("case_id", primaryID))
		}
		cases = append(cases, merged...)
	}

	return uc.consolidate(ctx, cases, primaryID)
}

func (uc *MergeUseCase) consolidate(ctx context.Context, cases []*model.Case, primaryID types.CaseID) ([]model.TimelineEvent, error) {
	sources := make([]model.TimelineSource, 0, len(cases))
	for _, c := range cases {
		msgs, err := uc.repo.CaseMessage().ListByCase(ctx, c.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load case messages", goerr.V("case_id", c.ID))
		}
		sources = append(sources, model.TimelineSource{Case: c, Messages: msgs})
	}
	return model.ConsolidateTimeline(primaryID, sources), nil
}

func (uc *MergeUseCase) audit(ctx context.Context, sess *model.Session, action types.ActionType, ids []types.CaseID, primary *types.CaseID) {
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

// unionTags collects every tag across the cases, deduplicated and sorted
func unionTags(cases []*model.Case) []string {
	seen := map[string]bool{}
	var tags []string
	for _, c := range cases {
		for _, tag := range c.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
