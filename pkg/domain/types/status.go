package types

import "fmt"

// Status represents the workflow state of a case
type Status string

const (
	StatusNew      Status = "New"
	StatusOpen     Status = "Open"
	StatusWaiting  Status = "Waiting"
	StatusResolved Status = "Resolved"
	StatusClosed   Status = "Closed"
)

// AllStatuses returns all valid case statuses
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusOpen,
		StatusWaiting,
		StatusResolved,
		StatusClosed,
	}
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusOpen, StatusWaiting, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

// IsCompleted reports whether the status means work on the case has finished.
// SLA risk freezes at completion for these statuses.
func (s Status) IsCompleted() bool {
	return s == StatusResolved || s == StatusClosed
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
