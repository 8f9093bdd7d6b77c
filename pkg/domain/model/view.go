package model

import (
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// SavedView is a named filter/sort/column preset owned by one agent. At most
// one view per owner carries IsDefault.
type SavedView struct {
	ID        types.ViewID
	Name      string
	Filters   FilterSet
	Sort      types.SortMode
	Columns   []string
	IsDefault bool
	OwnerID   types.AgentID
	CreatedAt time.Time
}

// Clone returns a deep copy of the saved view
func (v *SavedView) Clone() *SavedView {
	cloned := *v
	if v.Columns != nil {
		cloned.Columns = make([]string, len(v.Columns))
		copy(cloned.Columns, v.Columns)
	}
	if v.Filters.Tags != nil {
		cloned.Filters.Tags = make([]string, len(v.Filters.Tags))
		copy(cloned.Filters.Tags, v.Filters.Tags)
	}
	return &cloned
}
