package derive

import (
	"sort"
	"strings"

	"github.com/and161185/task-keeper/internal/model"
)

// SortField names a sortable dimension.
type SortField string

const (
	SortByTitle    SortField = "title"
	SortByPriority SortField = "priority"
	SortByDueDate  SortField = "dueDate"
	SortByCreated  SortField = "createdAt"
	SortByStatus   SortField = "status"
)

// SortOrder is the comparison direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SortSpec selects a field and direction.
type SortSpec struct {
	Field SortField
	Order SortOrder
}

// statusRank orders statuses for sorting: completed sorts first ascending.
func statusRank(s model.Status) int {
	switch s {
	case model.StatusCompleted:
		return 1
	case model.StatusInProgress:
		return 2
	case model.StatusPending:
		return 3
	case model.StatusArchived:
		return 4
	}
	return 5
}

// Sort returns a sorted copy of todos. The sort is stable, so ties keep
// their relative input order. For the due-date field, todos without a due
// date always sort after those with one — the direction flag reverses the
// comparison of present dates only, never the placement of missing ones.
// An unknown field returns the input order unchanged.
func Sort(todos []model.Todo, spec SortSpec) []model.Todo {
	out := make([]model.Todo, len(todos))
	copy(out, todos)

	desc := spec.Order == Desc
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if spec.Field == SortByDueDate {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return false
			case a.DueDate == nil:
				return false // missing date goes last either direction
			case b.DueDate == nil:
				return true
			}
			if desc {
				return b.DueDate.Before(*a.DueDate)
			}
			return a.DueDate.Before(*b.DueDate)
		}

		c := compareField(a, b, spec.Field)
		if desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func compareField(a, b model.Todo, field SortField) int {
	switch field {
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case SortByCreated:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByStatus:
		return statusRank(a.Status) - statusRank(b.Status)
	}
	return 0
}
