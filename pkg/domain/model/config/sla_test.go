package config_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-desk/caseinbox/pkg/domain/model/config"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

func TestDefaultSLAPolicy(t *testing.T) {
	policy := config.DefaultSLAPolicy()

	tests := []struct {
		dept  types.Department
		prio  types.Priority
		hours int
	}{
		{types.DepartmentFinance, types.PriorityUrgent, 4},
		{types.DepartmentFinance, types.PriorityLow, 48},
		{types.DepartmentAdmissions, types.PriorityUrgent, 24},
		{types.DepartmentIT, types.PriorityHigh, 4},
		{types.DepartmentHousing, types.PriorityNormal, 72},
	}

	for _, tt := range tests {
		got := policy.ResolutionWindow(tt.dept, tt.prio)
		gt.Value(t, got).Equal(time.Duration(tt.hours) * time.Hour)
	}
}

func TestResolutionWindowFallback(t *testing.T) {
	policy := config.DefaultSLAPolicy()
	got := policy.ResolutionWindow(types.Department("Parking"), types.PriorityUrgent)
	gt.Value(t, got).Equal(48 * time.Hour)
}

func TestFirstResponseWindow(t *testing.T) {
	policy := config.DefaultSLAPolicy()
	gt.Value(t, policy.FirstResponseWindow(types.PriorityUrgent)).Equal(time.Hour)
	gt.Value(t, policy.FirstResponseWindow(types.PriorityHigh)).Equal(2 * time.Hour)
	gt.Value(t, policy.FirstResponseWindow(types.PriorityNormal)).Equal(4 * time.Hour)
	gt.Value(t, policy.FirstResponseWindow(types.PriorityLow)).Equal(8 * time.Hour)
}

func TestNewSLAPolicyValidation(t *testing.T) {
	t.Run("unknown department rejected", func(t *testing.T) {
		_, err := config.NewSLAPolicy(0, map[types.Department]map[types.Priority]int{
			"Parking": {types.PriorityLow: 24},
		})
		gt.Error(t, err)
	})

	t.Run("non-positive hours rejected", func(t *testing.T) {
		_, err := config.NewSLAPolicy(0, map[types.Department]map[types.Priority]int{
			types.DepartmentIT: {types.PriorityLow: 0},
		})
		gt.Error(t, err)
	})

	t.Run("zero default falls back to 48", func(t *testing.T) {
		policy, err := config.NewSLAPolicy(0, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, policy.ResolutionWindow(types.DepartmentIT, types.PriorityLow)).Equal(48 * time.Hour)
	})
}
