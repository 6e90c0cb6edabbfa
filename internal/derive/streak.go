package derive

import (
	"sort"
	"time"

	"github.com/and161185/task-keeper/internal/model"
)

const dayFormat = "2006-01-02"

// Streaks reports completion streaks at calendar-day granularity.
type Streaks struct {
	// Current counts consecutive days with a completion, anchored at today
	// or yesterday. Zero when the most recent completion is older than that.
	Current int
	// Longest is the longest such run anywhere in history.
	Longest int
}

// Streak derives completion streaks from the distinct calendar dates on
// which a todo reached completed status. Only todos that are completed and
// carry a completion timestamp count. Dates are taken in now's location.
func Streak(todos []model.Todo, now time.Time) Streaks {
	seen := map[string]struct{}{}
	for _, t := range todos {
		if t.Status == model.StatusCompleted && t.CompletedAt != nil {
			seen[t.CompletedAt.In(now.Location()).Format(dayFormat)] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return Streaks{}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	today := now.Format(dayFormat)
	yesterday := now.AddDate(0, 0, -1).Format(dayFormat)

	var current int
	if dates[0] == today || dates[0] == yesterday {
		current = 1
		for i := 1; i < len(dates); i++ {
			if dayGap(dates[i-1], dates[i]) != 1 {
				break
			}
			current++
		}
	}

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dayGap(dates[i-1], dates[i]) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	return Streaks{Current: current, Longest: longest}
}

// dayGap returns the number of days between two dayFormat strings, with
// later listed first. Parsing in UTC keeps day arithmetic DST-free.
func dayGap(later, earlier string) int {
	a, err1 := time.Parse(dayFormat, later)
	b, err2 := time.Parse(dayFormat, earlier)
	if err1 != nil || err2 != nil {
		return -1
	}
	return int(a.Sub(b) / (24 * time.Hour))
}
