package model

import (
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// Requester is the student (or other requester) a case belongs to
type Requester struct {
	ID    string
	Name  string
	Email string `masq:"secret"`
}

// Case represents a single support conversation in the inbox.
//
// A case is in exactly one of three shapes: a normal case, a merged-away
// case (MergedInto set, hidden from all queue views), or a merge primary
// (MergedCases non-empty). It can never be both merged-away and a primary.
type Case struct {
	ID                 types.CaseID
	TicketNumber       types.TicketNumber
	Department         types.Department
	Subject            string
	Requester          Requester
	Priority           types.Priority
	Status             types.Status
	Channel            types.Channel
	Assignee           *types.AgentID
	Tags               []string
	MessageCount       int
	LastMessagePreview string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
	ClosedAt   *time.Time

	// Merge lineage
	MergedInto  *types.CaseID
	MergedCases []types.CaseID

	// Split lineage
	SplitFrom *types.TicketNumber
	SplitInto *types.TicketNumber

	// Version is the optimistic concurrency token. Repositories reject an
	// update whose Version does not match the stored record.
	Version int64
}

// IsMergedAway reports whether the case was absorbed into another case
func (c *Case) IsMergedAway() bool {
	return c.MergedInto != nil
}

// IsMergePrimary reports whether the case absorbed other cases
func (c *Case) IsMergePrimary() bool {
	return len(c.MergedCases) > 0
}

// HasTag reports whether the case carries the given tag
func (c *Case) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CompletionTime returns the completion timestamp for resolved/closed cases:
// ResolvedAt if set, else ClosedAt. Returns nil for open cases.
func (c *Case) CompletionTime() *time.Time {
	if !c.Status.IsCompleted() {
		return nil
	}
	if c.ResolvedAt != nil {
		return c.ResolvedAt
	}
	return c.ClosedAt
}

// Clone returns a deep copy of the case
func (c *Case) Clone() *Case {
	cloned := *c

	if c.Tags != nil {
		cloned.Tags = make([]string, len(c.Tags))
		copy(cloned.Tags, c.Tags)
	}
	if c.MergedCases != nil {
		cloned.MergedCases = make([]types.CaseID, len(c.MergedCases))
		copy(cloned.MergedCases, c.MergedCases)
	}
	if c.Assignee != nil {
		assignee := *c.Assignee
		cloned.Assignee = &assignee
	}
	if c.ResolvedAt != nil {
		t := *c.ResolvedAt
		cloned.ResolvedAt = &t
	}
	if c.ClosedAt != nil {
		t := *c.ClosedAt
		cloned.ClosedAt = &t
	}
	if c.MergedInto != nil {
		id := *c.MergedInto
		cloned.MergedInto = &id
	}
	if c.SplitFrom != nil {
		tn := *c.SplitFrom
		cloned.SplitFrom = &tn
	}
	if c.SplitInto != nil {
		tn := *c.SplitInto
		cloned.SplitInto = &tn
	}

	return &cloned
}
