package model

import (
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/model/config"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// atRiskThreshold is how close to the resolution deadline an open case may
// get before it is flagged yellow.
const atRiskThreshold = 4 * time.Hour

// SLA is the derived deadline and risk state of a case. It is recomputed on
// every read and never persisted.
type SLA struct {
	FirstResponseDueAt time.Time
	ResolutionDueAt    time.Time
	RiskLevel          types.RiskLevel
	Breached           bool
	PercentElapsed     int
}

// ComputeSLA derives the SLA state of a case at the given instant. The clock
// is passed explicitly so callers decide refresh cadence and tests need no
// clock abstraction.
//
// Completed cases are judged against their completion timestamp and frozen:
// red/breached when completion happened after the deadline, green otherwise.
// Open cases go red past the deadline, yellow within 4 hours of it, and
// green before that.
func ComputeSLA(policy *config.SLAPolicy, c *Case, now time.Time) SLA {
	window := policy.ResolutionWindow(c.Department, c.Priority)

	sla := SLA{
		FirstResponseDueAt: c.CreatedAt.Add(policy.FirstResponseWindow(c.Priority)),
		ResolutionDueAt:    c.CreatedAt.Add(window),
	}

	if done := c.CompletionTime(); done != nil {
		if done.After(sla.ResolutionDueAt) {
			sla.RiskLevel = types.RiskRed
			sla.Breached = true
		} else {
			sla.RiskLevel = types.RiskGreen
		}
		sla.PercentElapsed = percentElapsed(window, sla.ResolutionDueAt.Sub(*done))
		return sla
	}

	remaining := sla.ResolutionDueAt.Sub(now)
	switch {
	case remaining < 0:
		sla.RiskLevel = types.RiskRed
		sla.Breached = true
	case remaining <= atRiskThreshold:
		sla.RiskLevel = types.RiskYellow
	default:
		sla.RiskLevel = types.RiskGreen
	}
	sla.PercentElapsed = percentElapsed(window, remaining)
	return sla
}

// percentElapsed converts remaining time in a window to an elapsed
// percentage clamped to [0, 100].
func percentElapsed(window, remaining time.Duration) int {
	if window <= 0 {
		return 100
	}
	pct := 100 * (1 - remaining.Seconds()/window.Seconds())
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
