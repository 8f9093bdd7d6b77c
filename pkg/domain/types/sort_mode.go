package types

import "fmt"

// SortMode is the closed set of supported inbox sort orders. Using an enum
// instead of free-form field names rejects unsupported sort keys up front.
type SortMode string

const (
	// SortSLAAsc orders by ascending SLA percent elapsed, ties by most
	// recently updated first.
	SortSLAAsc SortMode = "sla_asc"
	// SortUpdatedDesc orders by most recently updated first.
	SortUpdatedDesc SortMode = "updated_desc"
	// SortPriorityDesc orders Urgent > High > Normal > Low, ties by most
	// recently updated first.
	SortPriorityDesc SortMode = "priority_desc"
)

// AllSortModes returns all valid sort modes
func AllSortModes() []SortMode {
	return []SortMode{SortSLAAsc, SortUpdatedDesc, SortPriorityDesc}
}

// IsValid checks if the sort mode is valid
func (s SortMode) IsValid() bool {
	switch s {
	case SortSLAAsc, SortUpdatedDesc, SortPriorityDesc:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort mode
func (s SortMode) String() string {
	return string(s)
}

// ParseSortMode parses a string into a SortMode
func ParseSortMode(s string) (SortMode, error) {
	mode := SortMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid sort mode: %s", s)
	}
	return mode, nil
}
