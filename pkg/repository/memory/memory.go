package memory

import (
	"github.com/campus-desk/caseinbox/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend used for development and tests.
// All returned records are deep copies; callers never share state with the
// store.
type Memory struct {
	cases    *caseRepository
	messages *messageRepository
	agents   *agentRepository
	views    *savedViewRepository
	undo     *undoRepository
	audit    *auditRepository
}

var _ interfaces.Repository = &Memory{}

// New creates an empty in-memory repository
func New() *Memory {
	return &Memory{
		cases:    newCaseRepository(),
		messages: newMessageRepository(),
		agents:   newAgentRepository(),
		views:    newSavedViewRepository(),
		undo:     newUndoRepository(),
		audit:    newAuditRepository(),
	}
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.cases
}

func (m *Memory) CaseMessage() interfaces.CaseMessageRepository {
	return m.messages
}

func (m *Memory) Agent() interfaces.AgentRepository {
	return m.agents
}

func (m *Memory) SavedView() interfaces.SavedViewRepository {
	return m.views
}

func (m *Memory) Undo() interfaces.UndoRepository {
	return m.undo
}

func (m *Memory) Audit() interfaces.AuditRepository {
	return m.audit
}

// Close is a no-op for the memory backend
func (m *Memory) Close() error {
	return nil
}
