package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/model/config"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	gt.NoError(t, err).Required()
	return ts
}

func TestComputeSLAFinanceUrgent(t *testing.T) {
	policy := config.DefaultSLAPolicy()
	created := mustTime(t, "2025-01-30T10:00:00Z")

	c := &model.Case{
		ID:         "CASE-1",
		Department: types.DepartmentFinance,
		Priority:   types.PriorityUrgent,
		Status:     types.StatusOpen,
		CreatedAt:  created,
	}

	t.Run("resolution due 4h after creation", func(t *testing.T) {
		sla := model.ComputeSLA(policy, c, created)
		gt.Value(t, sla.ResolutionDueAt).Equal(mustTime(t, "2025-01-30T14:00:00Z"))
		gt.Value(t, sla.FirstResponseDueAt).Equal(mustTime(t, "2025-01-30T11:00:00Z"))
	})

	t.Run("30 minutes before deadline is yellow", func(t *testing.T) {
		sla := model.ComputeSLA(policy, c, mustTime(t, "2025-01-30T13:30:00Z"))
		gt.Value(t, sla.RiskLevel).Equal(types.RiskYellow)
		gt.Bool(t, sla.Breached).False()
	})

	t.Run("30 minutes past deadline is red and breached", func(t *testing.T) {
		sla := model.ComputeSLA(policy, c, mustTime(t, "2025-01-30T14:30:00Z"))
		gt.Value(t, sla.RiskLevel).Equal(types.RiskRed)
		gt.Bool(t, sla.Breached).True()
		gt.Number(t, sla.PercentElapsed).Equal(100)
	})
}

func TestComputeSLAUnknownCombinationFallsBack(t *testing.T) {
	policy := config.DefaultSLAPolicy()
	created := mustTime(t, "2025-01-30T10:00:00Z")

	c := &model.Case{
		Department: types.Department("Parking"),
		Priority:   types.PriorityHigh,
		Status:     types.StatusOpen,
		CreatedAt:  created,
	}

	sla := model.ComputeSLA(policy, c, created)
	gt.Value(t, sla.ResolutionDueAt).Equal(created.Add(48 * time.Hour))
}

func TestComputeSLACompletedCases(t *testing.T) {
	policy := config.DefaultSLAPolicy()
	created := mustTime(t, "2025-01-30T10:00:00Z")
	now := mustTime(t, "2025-02-10T10:00:00Z") // long after the deadline

	t.Run("resolved before deadline stays green forever", func(t *testing.T) {
		resolved := mustTime(t, "2025-01-30T12:00:00Z")
		c := &model.Case{
			Department: types.DepartmentFinance,
			Priority:   types.PriorityUrgent,
			Status:     types.StatusResolved,
			CreatedAt:  created,
			ResolvedAt: &resolved,
		}
		sla := model.ComputeSLA(policy, c, now)
		gt.Value(t, sla.RiskLevel).Equal(types.RiskGreen)
		gt.Bool(t, sla.Breached).False()
	})

	t.Run("resolved after deadline is red and breached", func(t *testing.T) {
		resolved := mustTime(t, "2025-01-30T18:00:00Z")
		c := &model.Case{
			Department: types.DepartmentFinance,
			Priority:   types.PriorityUrgent,
			Status:     types.StatusResolved,
			CreatedAt:  created,
			ResolvedAt: &resolved,
		}
		sla := model.ComputeSLA(policy, c, now)
		gt.Value(t, sla.RiskLevel).Equal(types.RiskRed)
		gt.Bool(t, sla.Breached).True()
	})

	t.Run("closed without resolvedAt uses closedAt", func(t *testing.T) {
		closed := mustTime(t, "2025-01-30T13:00:00Z")
		c := &model.Case{
			Department: types.DepartmentFinance,
			Priority:   types.PriorityUrgent,
			Status:     types.StatusClosed,
			CreatedAt:  created,
			ClosedAt:   &closed,
		}
		sla := model.ComputeSLA(policy, c, now)
		gt.Value(t, sla.RiskLevel).Equal(types.RiskGreen)
	})
}

// Risk may only escalate as time passes for an open case: green < yellow < red.
func TestComputeSLARiskMonotonicity(t *testing.T) {
	policy := config.DefaultSLAPolicy()
	created := mustTime(t, "2025-01-30T10:00:00Z")

	c := &model.Case{
		Department: types.DepartmentHousing,
		Priority:   types.PriorityNormal, // 72h window
		Status:     types.StatusOpen,
		CreatedAt:  created,
	}

	prevRank := -1
	prevPct := -1
	for hours := 0; hours <= 80; hours++ {
		now := created.Add(time.Duration(hours) * time.Hour)
		sla := model.ComputeSLA(policy, c, now)

		if sla.RiskLevel.Rank() < prevRank {
			t.Fatalf("risk regressed at +%dh: rank %d -> %d", hours, prevRank, sla.RiskLevel.Rank())
		}
		if sla.PercentElapsed < prevPct {
			t.Fatalf("percent elapsed regressed at +%dh: %d -> %d", hours, prevPct, sla.PercentElapsed)
		}
		prevRank = sla.RiskLevel.Rank()
		prevPct = sla.PercentElapsed
	}
}

func TestPercentElapsedClamped(t *testing.T) {
	policy := config.DefaultSLAPolicy()
	created := mustTime(t, "2025-01-30T10:00:00Z")

	c := &model.Case{
		Department: types.DepartmentIT,
		Priority:   types.PriorityUrgent, // 4h window
		Status:     types.StatusOpen,
		CreatedAt:  created,
	}

	before := model.ComputeSLA(policy, c, created.Add(-time.Hour))
	gt.Number(t, before.PercentElapsed).Equal(0)

	wayAfter := model.ComputeSLA(policy, c, created.Add(100*time.Hour))
	gt.Number(t, wayAfter.PercentElapsed).Equal(100)
}
