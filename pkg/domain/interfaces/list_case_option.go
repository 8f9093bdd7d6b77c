package interfaces

import "github.com/campus-desk/caseinbox/pkg/domain/types"

// ListCaseOption is a functional option for filtering cases in List. These
// are coarse storage-level filters; the query engine applies the full
// conjunctive filter set in memory.
type ListCaseOption func(*listCaseConfig)

type listCaseConfig struct {
	department *types.Department
	assignee   *types.AgentID
	openOnly   bool
}

// WithDepartment filters cases by department
func WithDepartment(dept types.Department) ListCaseOption {
	return func(c *listCaseConfig) {
		c.department = &dept
	}
}

// WithAssignee filters cases by their assigned agent
func WithAssignee(id types.AgentID) ListCaseOption {
	return func(c *listCaseConfig) {
		c.assignee = &id
	}
}

// WithOpenOnly keeps only cases whose status is not resolved or closed
func WithOpenOnly() ListCaseOption {
	return func(c *listCaseConfig) {
		c.openOnly = true
	}
}

// BuildListCaseConfig builds a listCaseConfig from options
func BuildListCaseConfig(opts ...ListCaseOption) *listCaseConfig {
	cfg := &listCaseConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Department returns the department filter value, or nil if not set
func (c *listCaseConfig) Department() *types.Department {
	return c.department
}

// Assignee returns the assignee filter value, or nil if not set
func (c *listCaseConfig) Assignee() *types.AgentID {
	return c.assignee
}

// OpenOnly reports whether completed cases should be excluded
func (c *listCaseConfig) OpenOnly() bool {
	return c.openOnly
}
