package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(t time.Time, offset int) string {
	return t.AddDate(0, 0, offset).UTC().Format(time.DateOnly)
}

func TestCompute_EmptyHistory(t *testing.T) {
	got := Compute(nil, 5, time.Now())
	assert.Equal(t, 0, got.TotalCompletions)
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 0, got.LongestStreak)
	assert.Equal(t, 5, got.ActiveHabits)
}

func TestCompute_CurrentStreakStopsAtGap(t *testing.T) {
	today := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	// today, yesterday, and 3 days ago: the gap at -2 ends the walk.
	recs := []CompletionRecord{
		{Day: day(today, 0), Percentage: 100},
		{Day: day(today, -1), Percentage: 100},
		{Day: day(today, -3), Percentage: 100},
	}
	got := Compute(recs, 1, today)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 2, got.LongestStreak)
	assert.Equal(t, 3, got.TotalCompletions)
}

func TestCompute_LongestRunBeatsMostRecentRun(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	// days -8..-6 form a run of 3; days -4,-3 only 2.
	recs := []CompletionRecord{
		{Day: day(today, -8), Percentage: 100},
		{Day: day(today, -7), Percentage: 100},
		{Day: day(today, -6), Percentage: 100},
		{Day: day(today, -4), Percentage: 100},
		{Day: day(today, -3), Percentage: 100},
	}
	got := Compute(recs, 1, today)
	assert.Equal(t, 3, got.LongestStreak)
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 5, got.TotalCompletions)
}

func TestCompute_PartialCompletionsExcluded(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	recs := []CompletionRecord{
		{Day: day(today, 0), Percentage: 50},
		{Day: day(today, -1), Percentage: 99},
	}
	got := Compute(recs, 2, today)
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 0, got.LongestStreak)
	assert.Equal(t, 0, got.TotalCompletions)
}

func TestCompute_DuplicateDaysCollapse(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	recs := []CompletionRecord{
		{Day: day(today, 0), Percentage: 100},
		{Day: day(today, 0), Percentage: 100},
		{Day: day(today, -1), Percentage: 100},
	}
	got := Compute(recs, 1, today)
	assert.Equal(t, 2, got.TotalCompletions)
	assert.Equal(t, 2, got.CurrentStreak)
}

func TestCompute_LookbackSafetyValve(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	recs := make([]CompletionRecord, 0, 400)
	for i := 0; i < 400; i++ {
		recs = append(recs, CompletionRecord{Day: day(today, -i), Percentage: 100})
	}
	got := Compute(recs, 1, today)
	assert.Equal(t, maxStreakLookback, got.CurrentStreak)
	assert.Equal(t, 400, got.LongestStreak)
}

func TestStreakFor(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	cur, longest := StreakFor([]CompletionRecord{
		{Day: day(today, 0), Percentage: 100},
		{Day: day(today, -1), Percentage: 100},
		{Day: day(today, -5), Percentage: 100},
		{Day: day(today, -6), Percentage: 100},
		{Day: day(today, -7), Percentage: 100},
	}, today)
	assert.Equal(t, 2, cur)
	assert.Equal(t, 3, longest)
}
