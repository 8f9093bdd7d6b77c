package types

import "fmt"

// ActionType identifies a mutation performed against one or more cases,
// recorded for audit and (for merges) undo.
type ActionType string

const (
	ActionAssign   ActionType = "assign"
	ActionStatus   ActionType = "status"
	ActionPriority ActionType = "priority"
	ActionTag      ActionType = "tag"
	ActionMerge    ActionType = "merge"
	ActionSplit    ActionType = "split"
)

// IsValid checks if the action type is valid
func (a ActionType) IsValid() bool {
	switch a {
	case ActionAssign, ActionStatus, ActionPriority, ActionTag, ActionMerge, ActionSplit:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action type
func (a ActionType) String() string {
	return string(a)
}

// ParseActionType parses a string into an ActionType
func ParseActionType(s string) (ActionType, error) {
	a := ActionType(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return a, nil
}
