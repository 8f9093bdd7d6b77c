package model

import (
	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// Agent is a help desk agent who works the shared queue
type Agent struct {
	ID         types.AgentID
	Name       string
	Email      string `masq:"secret"`
	Department types.Department
}

// AgentWorkload pairs an agent with the number of open cases currently
// assigned to them. The count is computed on read, never stored.
type AgentWorkload struct {
	Agent       *Agent
	CurrentLoad int
}
