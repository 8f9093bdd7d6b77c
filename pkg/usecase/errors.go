package usecase

import "errors"

// Sentinel errors for the use case layer. The HTTP controller maps these to
// status codes; everything else is a 500.
var (
	// ErrValidation covers malformed or semantically invalid input
	ErrValidation = errors.New("validation failed")

	// Not found errors
	ErrCaseNotFound  = errors.New("case not found")
	ErrAgentNotFound = errors.New("agent not found")
	ErrViewNotFound  = errors.New("saved view not found")

	// ErrBulkActionFailed wraps the cause of a failed bulk mutation after
	// its optimistic overlay has been rolled back
	ErrBulkActionFailed = errors.New("bulk action failed")

	// Undo errors. An expired undo keeps its ledger record; the merge
	// simply stays in effect.
	ErrUndoNotFound = errors.New("no undoable merge found")
	ErrUndoExpired  = errors.New("undo window has expired")
)
