// Package derive contains pure transformations of a todo collection:
// filtered and sorted views, aggregate statistics and completion streaks.
//
// Functions here never mutate their input; they return fresh slices and
// values. Anything relative to "now" takes the reference moment as an
// argument so results are reproducible.
package derive

import (
	"strings"
	"time"

	"github.com/and161185/task-keeper/internal/model"
)

// StatusFilter selects todos by status. The zero value and StatusAll match
// every status.
type StatusFilter string

// StatusAll matches every status.
const StatusAll StatusFilter = "all"

// ByStatus narrows to a single status.
func ByStatus(s model.Status) StatusFilter { return StatusFilter(s) }

func (f StatusFilter) matches(s model.Status) bool {
	return f == "" || f == StatusAll || model.Status(f) == s
}

// PriorityFilter selects todos by priority. The zero value and PriorityAll
// match every priority.
type PriorityFilter string

// PriorityAll matches every priority.
const PriorityAll PriorityFilter = "all"

// ByPriority narrows to a single priority.
func ByPriority(p model.Priority) PriorityFilter { return PriorityFilter(p) }

func (f PriorityFilter) matches(p model.Priority) bool {
	return f == "" || f == PriorityAll || model.Priority(f) == p
}

// CategoryFilter selects todos by exact category label. The zero value and
// CategoryAll match every category.
type CategoryFilter string

// CategoryAll matches every category.
const CategoryAll CategoryFilter = "all"

func (f CategoryFilter) matches(c string) bool {
	return f == "" || f == CategoryAll || string(f) == c
}

// DueFilter buckets todos by due date relative to the reference moment.
type DueFilter string

const (
	DueAll     DueFilter = "all"
	DueToday   DueFilter = "today"
	DueWeek    DueFilter = "week"
	DueMonth   DueFilter = "month"
	DueOverdue DueFilter = "overdue"
)

// matches reports whether a due date falls into the bucket. A todo without
// a due date never matches a non-all bucket.
func (f DueFilter) matches(due *time.Time, now time.Time) bool {
	if f == "" || f == DueAll {
		return true
	}
	if due == nil {
		return false
	}
	switch f {
	case DueToday:
		return sameDay(*due, now)
	case DueWeek:
		return sameWeek(*due, now)
	case DueMonth:
		return sameMonth(*due, now)
	case DueOverdue:
		return IsOverdue(*due, now)
	}
	return false
}

// Filters is a conjunction of independent predicates; a todo must satisfy
// all of them. Zero-value dimensions match everything.
type Filters struct {
	Status   StatusFilter
	Priority PriorityFilter
	Category CategoryFilter
	Search   string
	Due      DueFilter
}

// Filter returns the todos satisfying f, evaluated against now for the due
// bucket. The input is not modified; relative order is preserved.
func Filter(todos []model.Todo, f Filters, now time.Time) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if !f.Status.matches(t.Status) ||
			!f.Priority.matches(t.Priority) ||
			!f.Category.matches(t.Category) {
			continue
		}
		if f.Search != "" && !matchesSearch(t, f.Search) {
			continue
		}
		if !f.Due.matches(t.DueDate, now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesSearch reports a case-insensitive substring match against the
// title, the description or any tag. One matching field suffices.
func matchesSearch(t model.Todo, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(t.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
