package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// CaseID is the opaque identity of a case (e.g. "CASE-20250001")
type CaseID string

// Validate checks if the CaseID is valid
func (c CaseID) Validate() error {
	if c == "" {
		return goerr.New("case ID cannot be empty")
	}
	return nil
}

// String returns the string representation of CaseID
func (c CaseID) String() string {
	return string(c)
}

// TicketNumber is the human-readable, immutable ticket identity (e.g. "TKT-20250001")
type TicketNumber string

// String returns the string representation of TicketNumber
func (t TicketNumber) String() string {
	return string(t)
}

// AgentID represents a unique identifier for a help desk agent
type AgentID string

var agentIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the AgentID is valid
func (a AgentID) Validate() error {
	if a == "" {
		return goerr.New("agent ID cannot be empty")
	}
	if !agentIDPattern.MatchString(string(a)) {
		return goerr.New("agent ID must be lowercase alphanumeric with hyphens", goerr.V("id", a))
	}
	return nil
}

// String returns the string representation of AgentID
func (a AgentID) String() string {
	return string(a)
}

// MessageID represents a unique identifier for a case message
type MessageID string

// String returns the string representation of MessageID
func (m MessageID) String() string {
	return string(m)
}

// MergeID identifies a merge operation in the undo ledger
type MergeID string

// Validate checks if the MergeID is valid
func (m MergeID) Validate() error {
	if m == "" {
		return goerr.New("merge ID cannot be empty")
	}
	return nil
}

// String returns the string representation of MergeID
func (m MergeID) String() string {
	return string(m)
}

// ViewID represents a unique identifier for a saved view
type ViewID string

// Validate checks if the ViewID is valid
func (v ViewID) Validate() error {
	if v == "" {
		return goerr.New("view ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ViewID
func (v ViewID) String() string {
	return string(v)
}
