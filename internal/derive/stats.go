package derive

import (
	"time"

	"github.com/and161185/task-keeper/internal/model"
)

// Stats aggregates a todo collection. All counters come from one pass over
// the input; nothing is cached between calls.
type Stats struct {
	Total      int                    `json:"total"`
	Pending    int                    `json:"pending"`
	InProgress int                    `json:"inProgress"`
	Completed  int                    `json:"completed"`
	Archived   int                    `json:"archived"`
	ByPriority map[model.Priority]int `json:"byPriority"`
	ByCategory map[string]int         `json:"byCategory"`
	// CompletionRate is completed/total as a percentage, 0 for an empty input.
	CompletionRate float64 `json:"completionRate"`
	// AvgCompletionTime averages CompletedAt-CreatedAt over completed todos
	// that carry a completion timestamp.
	AvgCompletionTime time.Duration `json:"averageCompletionTime"`
}

// Calculate computes aggregate statistics over todos.
func Calculate(todos []model.Todo) Stats {
	s := Stats{
		ByPriority: map[model.Priority]int{},
		ByCategory: map[string]int{},
	}

	var completionSum time.Duration
	var completionN int
	for _, t := range todos {
		s.Total++
		switch t.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusCompleted:
			s.Completed++
		case model.StatusArchived:
			s.Archived++
		}
		s.ByPriority[t.Priority]++
		s.ByCategory[t.Category]++

		if t.Status == model.StatusCompleted && t.CompletedAt != nil {
			completionSum += t.CompletedAt.Sub(t.CreatedAt)
			completionN++
		}
	}

	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}
	if completionN > 0 {
		s.AvgCompletionTime = completionSum / time.Duration(completionN)
	}
	return s
}
