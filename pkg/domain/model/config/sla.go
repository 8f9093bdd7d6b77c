package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// DefaultResolutionHours is the fallback resolution window for any
// (department, priority) pair not covered by the policy table.
const DefaultResolutionHours = 48

// SLAPolicy is the lookup table of resolution windows keyed by department
// and priority, plus first-response windows keyed by priority alone.
type SLAPolicy struct {
	defaultHours int
	resolution   map[types.Department]map[types.Priority]int
}

// NewSLAPolicy builds a policy from an explicit table. A defaultHours of 0
// falls back to DefaultResolutionHours.
func NewSLAPolicy(defaultHours int, resolution map[types.Department]map[types.Priority]int) (*SLAPolicy, error) {
	if defaultHours < 0 {
		return nil, goerr.New("default SLA hours must not be negative", goerr.V("hours", defaultHours))
	}
	if defaultHours == 0 {
		defaultHours = DefaultResolutionHours
	}
	for dept, byPriority := range resolution {
		if !dept.IsValid() {
			return nil, goerr.New("unknown department in SLA policy", goerr.V("department", dept))
		}
		for prio, hours := range byPriority {
			if !prio.IsValid() {
				return nil, goerr.New("unknown priority in SLA policy", goerr.V("department", dept), goerr.V("priority", prio))
			}
			if hours <= 0 {
				return nil, goerr.New("SLA hours must be positive",
					goerr.V("department", dept), goerr.V("priority", prio), goerr.V("hours", hours))
			}
		}
	}
	return &SLAPolicy{defaultHours: defaultHours, resolution: resolution}, nil
}

// DefaultSLAPolicy returns the built-in policy table
func DefaultSLAPolicy() *SLAPolicy {
	policy, err := NewSLAPolicy(DefaultResolutionHours, map[types.Department]map[types.Priority]int{
		types.DepartmentFinance: {
			types.PriorityLow:    48,
			types.PriorityNormal: 24,
			types.PriorityHigh:   24,
			types.PriorityUrgent: 4,
		},
		types.DepartmentAdmissions: {
			types.PriorityLow:    48,
			types.PriorityNormal: 48,
			types.PriorityHigh:   24,
			types.PriorityUrgent: 24,
		},
		types.DepartmentRegistrar: {
			types.PriorityLow:    48,
			types.PriorityNormal: 24,
			types.PriorityHigh:   24,
			types.PriorityUrgent: 4,
		},
		types.DepartmentIT: {
			types.PriorityLow:    24,
			types.PriorityNormal: 24,
			types.PriorityHigh:   4,
			types.PriorityUrgent: 4,
		},
		types.DepartmentHousing: {
			types.PriorityLow:    72,
			types.PriorityNormal: 72,
			types.PriorityHigh:   48,
			types.PriorityUrgent: 24,
		},
	})
	if err != nil {
		// The built-in table is validated by tests; reaching here is a bug.
		panic(err)
	}
	return policy
}

// ResolutionWindow returns the time allowed between case creation and
// resolution for the given department and priority.
func (p *SLAPolicy) ResolutionWindow(dept types.Department, prio types.Priority) time.Duration {
	if byPriority, ok := p.resolution[dept]; ok {
		if hours, ok := byPriority[prio]; ok {
			return time.Duration(hours) * time.Hour
		}
	}
	return time.Duration(p.defaultHours) * time.Hour
}

// FirstResponseWindow returns the time allowed before a case must receive
// its first response, keyed by priority alone.
func (p *SLAPolicy) FirstResponseWindow(prio types.Priority) time.Duration {
	switch prio {
	case types.PriorityUrgent:
		return time.Hour
	case types.PriorityHigh:
		return 2 * time.Hour
	case types.PriorityNormal:
		return 4 * time.Hour
	default:
		return 8 * time.Hour
	}
}
