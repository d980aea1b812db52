package stats

import (
	"sort"
	"time"

	"github.com/atomictrack/atomictrack/pkg/tool"
)

// maxStreakLookback caps the backward walk when computing the current streak.
// A safety valve against pathological histories, not a business rule.
const maxStreakLookback = 365

// CompletionRecord is the minimal shape the calculator needs.
type CompletionRecord struct {
	Day        string `json:"day"`
	Percentage int    `json:"percentage"`
}

// Summary is the derived completion statistics for display.
type Summary struct {
	TotalCompletions int `json:"total_completions"`
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	ActiveHabits     int `json:"active_habits"`
}

// Compute derives streak statistics from a completion history. Only records
// at 100 percent count; duplicate records on the same day collapse to one.
// today anchors the current-streak walk and must be the server's date, never
// a client clock.
func Compute(completions []CompletionRecord, activeHabitCount int, today time.Time) Summary {
	s := Summary{ActiveHabits: activeHabitCount}

	qualifying := make(map[string]struct{})
	for _, c := range completions {
		if c.Percentage >= 100 {
			qualifying[c.Day] = struct{}{}
		}
	}
	s.TotalCompletions = len(qualifying)
	if len(qualifying) == 0 {
		return s
	}

	// Current streak: walk back one calendar day at a time from today.
	day := tool.DayOf(today)
	for i := 0; i < maxStreakLookback; i++ {
		if _, ok := qualifying[day.Format(time.DateOnly)]; !ok {
			break
		}
		s.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	// Longest streak: longest run of calendar-consecutive distinct days.
	days := make([]time.Time, 0, len(qualifying))
	for k := range qualifying {
		if d, err := time.ParseInLocation(time.DateOnly, k, time.UTC); err == nil {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > s.LongestStreak {
			s.LongestStreak = run
		}
	}
	return s
}

// StreakFor derives a single habit's current streak and longest streak from
// its own completion history. Same walk as Compute, scoped to one habit.
func StreakFor(completions []CompletionRecord, today time.Time) (current, longest int) {
	sum := Compute(completions, 0, today)
	return sum.CurrentStreak, sum.LongestStreak
}
