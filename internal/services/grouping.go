package services

import (
	"sort"

	"github.com/samber/lo"

	"github.com/jsongrid/backend/internal/models"
)

// HasGrouping reports whether rows carry parent/child grouping.
func HasGrouping(rows []models.Row) bool {
	return lo.ContainsBy(rows, func(r models.Row) bool {
		return r.Group != nil
	})
}

// CollapseSet holds the parent IDs whose children are hidden.
type CollapseSet map[int]struct{}

func (cs CollapseSet) Has(parentID int) bool {
	_, ok := cs[parentID]
	return ok
}

func (cs CollapseSet) Collapse(parentID int) {
	cs[parentID] = struct{}{}
}

func (cs CollapseSet) Expand(parentID int) {
	delete(cs, parentID)
}

// Toggle flips parentID and reports whether it is now collapsed.
func (cs CollapseSet) Toggle(parentID int) bool {
	if cs.Has(parentID) {
		cs.Expand(parentID)
		return false
	}
	cs.Collapse(parentID)
	return true
}

// IDs returns the collapsed parent IDs in ascending order.
func (cs CollapseSet) IDs() []int {
	ids := lo.Keys(cs)
	sort.Ints(ids)
	return ids
}

// VisibleRows filters out the children of collapsed parents. Parent rows are
// always kept, and ungrouped rows are returned unchanged.
func VisibleRows(rows []models.Row, collapsed CollapseSet) []models.Row {
	if !HasGrouping(rows) || len(collapsed) == 0 {
		return rows
	}
	return lo.Filter(rows, func(r models.Row, _ int) bool {
		if r.Group == nil || r.Group.IsParent() {
			return true
		}
		return !collapsed.Has(r.Group.ParentID)
	})
}
