package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and161185/task-keeper/internal/model"
)

// refNow is a Wednesday. Weeks start on Sunday, so the surrounding week is
// Mar 10 (Sun) .. Mar 16 (Sat).
var refNow = time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

func tptr(t time.Time) *time.Time { return &t }

func fixture() []model.Todo {
	return []model.Todo{
		{
			ID: "t1", UserID: "u1", Title: "Buy groceries",
			Status: model.StatusPending, Priority: model.PriorityHigh,
			Category: "Shopping", Tags: []string{"errands"},
			DueDate: tptr(time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)), // today
		},
		{
			ID: "t2", UserID: "u1", Title: "Quarterly report",
			Description: "Finance numbers for Q1",
			Status:      model.StatusInProgress, Priority: model.PriorityUrgent,
			Category: "Work",
			DueDate:  tptr(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)), // this week
		},
		{
			ID: "t3", UserID: "u1", Title: "Dentist",
			Status: model.StatusPending, Priority: model.PriorityMedium,
			Category: "Health",
			DueDate:  tptr(time.Date(2024, 3, 27, 9, 0, 0, 0, time.UTC)), // this month
		},
		{
			ID: "t4", UserID: "u1", Title: "Renew passport",
			Status: model.StatusPending, Priority: model.PriorityLow,
			Category: "Personal", Tags: []string{"Paperwork", "travel"},
			DueDate: tptr(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)), // overdue (and this week)
		},
		{
			ID: "t5", UserID: "u1", Title: "Someday ideas",
			Status: model.StatusArchived, Priority: model.PriorityLow,
			Category: "Personal", // no due date
		},
	}
}

func ids(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func TestFilter_AllFiltersAreNoop(t *testing.T) {
	in := fixture()

	got := Filter(in, Filters{}, refNow)
	require.Equal(t, ids(in), ids(got))

	got = Filter(in, Filters{
		Status:   StatusAll,
		Priority: PriorityAll,
		Category: CategoryAll,
		Due:      DueAll,
	}, refNow)
	require.Equal(t, ids(in), ids(got))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := ids(in)
	_ = Filter(in, Filters{Status: ByStatus(model.StatusPending)}, refNow)
	require.Equal(t, before, ids(in))
}

func TestFilter_ByStatusPriorityCategory(t *testing.T) {
	in := fixture()

	require.Equal(t, []string{"t1", "t3", "t4"},
		ids(Filter(in, Filters{Status: ByStatus(model.StatusPending)}, refNow)))
	require.Equal(t, []string{"t2"},
		ids(Filter(in, Filters{Priority: ByPriority(model.PriorityUrgent)}, refNow)))
	require.Equal(t, []string{"t4", "t5"},
		ids(Filter(in, Filters{Category: "Personal"}, refNow)))

	// predicates are conjunctive
	require.Equal(t, []string{"t4"},
		ids(Filter(in, Filters{
			Status:   ByStatus(model.StatusPending),
			Category: "Personal",
		}, refNow)))
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	in := fixture()

	require.Equal(t, []string{"t1"}, ids(Filter(in, Filters{Search: "GROCERIES"}, refNow)))
	// description matches too
	require.Equal(t, []string{"t2"}, ids(Filter(in, Filters{Search: "finance"}, refNow)))
	// any tag suffices
	require.Equal(t, []string{"t4"}, ids(Filter(in, Filters{Search: "paperwork"}, refNow)))
	require.Empty(t, Filter(in, Filters{Search: "no such term"}, refNow))
}

func TestFilter_DueBuckets(t *testing.T) {
	in := fixture()

	require.Equal(t, []string{"t1"}, ids(Filter(in, Filters{Due: DueToday}, refNow)))
	require.Equal(t, []string{"t1", "t2", "t4"}, ids(Filter(in, Filters{Due: DueWeek}, refNow)))
	require.Equal(t, []string{"t1", "t2", "t3", "t4"}, ids(Filter(in, Filters{Due: DueMonth}, refNow)))
	require.Equal(t, []string{"t4"}, ids(Filter(in, Filters{Due: DueOverdue}, refNow)))
}

func TestFilter_NoDueDateNeverMatchesBuckets(t *testing.T) {
	in := fixture()
	for _, bucket := range []DueFilter{DueToday, DueWeek, DueMonth, DueOverdue} {
		for _, got := range Filter(in, Filters{Due: bucket}, refNow) {
			require.NotEqual(t, "t5", got.ID, "bucket %s matched a todo without a due date", bucket)
		}
	}
	// but "all" keeps it
	require.Contains(t, ids(Filter(in, Filters{Due: DueAll}, refNow)), "t5")
}
