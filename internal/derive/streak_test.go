package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and161185/task-keeper/internal/model"
)

func completedOn(days ...time.Time) []model.Todo {
	todos := make([]model.Todo, 0, len(days))
	for _, d := range days {
		at := d
		todos = append(todos, model.Todo{
			Status:      model.StatusCompleted,
			CompletedAt: &at,
		})
	}
	return todos
}

func TestStreak_NoCompletions(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

	got := Streak(nil, now)
	require.Zero(t, got.Current)
	require.Zero(t, got.Longest)

	// pending todos and completed ones without a timestamp do not count
	got = Streak([]model.Todo{
		{Status: model.StatusPending},
		{Status: model.StatusCompleted}, // no CompletedAt
	}, now)
	require.Zero(t, got.Current)
	require.Zero(t, got.Longest)
}

func TestStreak_ThreeConsecutiveDaysEndingYesterday(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)
	got := Streak(completedOn(
		time.Date(2024, 3, 12, 20, 0, 0, 0, time.UTC), // yesterday
		time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC),
	), now)
	require.Equal(t, 3, got.Current)
	require.GreaterOrEqual(t, got.Longest, 3)
}

func TestStreak_OldCompletionGivesNoCurrent(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)
	got := Streak(completedOn(
		time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC), // a week ago
	), now)
	require.Equal(t, 0, got.Current)
	require.Equal(t, 1, got.Longest)
}

func TestStreak_GapResetsLongestRun(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	// runs: 1-2-3 (len 3), then 10, then 12-13 (len 2)
	got := Streak(completedOn(
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC),
	), now)
	require.Equal(t, 0, got.Current) // nothing today or yesterday
	require.Equal(t, 3, got.Longest)
}

func TestStreak_MultipleCompletionsSameDayCountOnce(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)
	got := Streak(completedOn(
		time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC), // today, twice
		time.Date(2024, 3, 13, 11, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC),
	), now)
	require.Equal(t, 2, got.Current)
	require.Equal(t, 2, got.Longest)
}

func TestStreak_CurrentAnchoredAtToday(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)
	got := Streak(completedOn(
		time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC),
	), now)
	require.Equal(t, 1, got.Current)
	require.Equal(t, 1, got.Longest)
}
