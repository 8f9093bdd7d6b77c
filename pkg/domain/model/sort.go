package model

import (
	"sort"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// CaseView is a case paired with its SLA state as of the query instant.
// Inbox queries return CaseViews so callers never see a stale SLA.
type CaseView struct {
	Case *Case
	SLA  SLA
}

// SortCaseViews orders views by the given mode. Every mode ends with a
// ticket number tiebreak so the order is total: two distinct cases can never
// compare equal, and repeated queries over the same data return the same
// sequence.
func SortCaseViews(views []CaseView, mode types.SortMode) {
	var less func(a, b CaseView) bool

	switch mode {
	case types.SortUpdatedDesc:
		less = func(a, b CaseView) bool {
			if !a.Case.UpdatedAt.Equal(b.Case.UpdatedAt) {
				return a.Case.UpdatedAt.After(b.Case.UpdatedAt)
			}
			return a.Case.TicketNumber < b.Case.TicketNumber
		}

	case types.SortPriorityDesc:
		less = func(a, b CaseView) bool {
			if ra, rb := a.Case.Priority.Rank(), b.Case.Priority.Rank(); ra != rb {
				return ra > rb
			}
			if !a.Case.UpdatedAt.Equal(b.Case.UpdatedAt) {
				return a.Case.UpdatedAt.After(b.Case.UpdatedAt)
			}
			return a.Case.TicketNumber < b.Case.TicketNumber
		}

	default: // types.SortSLAAsc
		less = func(a, b CaseView) bool {
			if a.SLA.PercentElapsed != b.SLA.PercentElapsed {
				return a.SLA.PercentElapsed < b.SLA.PercentElapsed
			}
			if !a.Case.UpdatedAt.Equal(b.Case.UpdatedAt) {
				return a.Case.UpdatedAt.After(b.Case.UpdatedAt)
			}
			return a.Case.TicketNumber < b.Case.TicketNumber
		}
	}

	sort.SliceStable(views, func(i, j int) bool { return less(views[i], views[j]) })
}
