package model

import (
	"strings"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// FilterAll is the sentinel for enum filters that do not constrain results
const FilterAll = "All"

// Owner is the assignee filter: everyone, the calling agent, unassigned
// cases, or a specific agent id.
type Owner string

const (
	OwnerAll        Owner = FilterAll
	OwnerMe         Owner = "me"
	OwnerUnassigned Owner = "unassigned"
)

// OwnerAgent builds an owner filter for a specific agent
func OwnerAgent(id types.AgentID) Owner {
	return Owner(id)
}

// AgentID returns the specific agent id an owner filter names, if any
func (o Owner) AgentID() (types.AgentID, bool) {
	switch o {
	case OwnerAll, OwnerMe, OwnerUnassigned, "":
		return "", false
	default:
		return types.AgentID(o), true
	}
}

// FilterSet is the conjunctive (AND) filter applied to the inbox. Enum
// fields set to FilterAll or left empty do not constrain; tags match if the
// case carries ANY of them; search is a case-insensitive substring match
// against subject, ticket number, and requester name (OR across the three).
type FilterSet struct {
	Department types.Department
	Status     types.Status
	Priority   types.Priority
	SLARisk    types.RiskLevel
	Channel    types.Channel
	Tags       []string
	Owner      Owner
	Search     string
}

// DefaultFilters is the engine's built-in default view: everything except
// status, which defaults to Open. This is distinct from "no filter".
func DefaultFilters() FilterSet {
	return FilterSet{
		Department: FilterAll,
		Status:     types.StatusOpen,
		Priority:   FilterAll,
		SLARisk:    FilterAll,
		Channel:    FilterAll,
		Owner:      OwnerAll,
	}
}

func wantsAll(s string) bool {
	return s == "" || s == FilterAll
}

// Matches reports whether a case passes every constraint in the filter set.
// The SLA is passed in because risk filtering depends on the evaluation
// instant, which the caller owns. me is the calling agent, used by the
// Owner=me filter.
func (f FilterSet) Matches(c *Case, sla SLA, me types.AgentID) bool {
	if !wantsAll(f.Department.String()) && c.Department != f.Department {
		return false
	}
	if !wantsAll(f.Status.String()) && c.Status != f.Status {
		return false
	}
	if !wantsAll(f.Priority.String()) && c.Priority != f.Priority {
		return false
	}
	if !wantsAll(f.SLARisk.String()) && sla.RiskLevel != f.SLARisk {
		return false
	}
	if !wantsAll(f.Channel.String()) && c.Channel != f.Channel {
		return false
	}

	switch f.Owner {
	case OwnerAll, "":
	case OwnerMe:
		if c.Assignee == nil || *c.Assignee != me {
			return false
		}
	case OwnerUnassigned:
		if c.Assignee != nil {
			return false
		}
	default:
		if c.Assignee == nil || *c.Assignee != types.AgentID(f.Owner) {
			return false
		}
	}

	if len(f.Tags) > 0 {
		anyTag := false
		for _, tag := range f.Tags {
			if c.HasTag(tag) {
				anyTag = true
				break
			}
		}
		if !anyTag {
			return false
		}
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Subject), needle) &&
			!strings.Contains(strings.ToLower(c.TicketNumber.String()), needle) &&
			!strings.Contains(strings.ToLower(c.Requester.Name), needle) {
			return false
		}
	}

	return true
}
