package interfaces

import "errors"

// Repository defines the interface for data persistence. The case inbox
// engine is storage-agnostic; everything it needs from storage is listed
// here and implemented by both the memory and firestore backends.
type Repository interface {
	Case() CaseRepository
	CaseMessage() CaseMessageRepository
	Agent() AgentRepository
	SavedView() SavedViewRepository
	Undo() UndoRepository
	Audit() AuditRepository

	Close() error
}

// Sentinel errors shared by every backend so callers can errors.Is without
// knowing which implementation they hold.
var (
	// ErrNotFound signals a missing record
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals the record's version changed since it was read
	ErrConflict = errors.New("record version conflict")
)
