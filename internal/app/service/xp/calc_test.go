package xp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAward_BonusTable(t *testing.T) {
	tests := []struct {
		name string
		bc   BonusContext
		want int
	}{
		{
			name: "first of three habits",
			bc:   BonusContext{HabitTitle: "Read", HabitStreak: 1, OthersCompletedToday: 0, ActiveHabits: 3},
			want: 15, // base 10 + first-of-day 5
		},
		{
			name: "last of three habits",
			bc:   BonusContext{HabitTitle: "Read", HabitStreak: 1, OthersCompletedToday: 2, ActiveHabits: 3},
			want: 25, // base 10 + all-completed 15
		},
		{
			name: "middle of three habits",
			bc:   BonusContext{HabitTitle: "Read", HabitStreak: 1, OthersCompletedToday: 1, ActiveHabits: 3},
			want: 10,
		},
		{
			name: "only habit gets both day bonuses",
			bc:   BonusContext{HabitTitle: "Read", HabitStreak: 1, OthersCompletedToday: 0, ActiveHabits: 1},
			want: 30, // base 10 + first 5 + all 15
		},
		{
			name: "week streak",
			bc:   BonusContext{HabitTitle: "Read", HabitStreak: 7, OthersCompletedToday: 1, ActiveHabits: 3},
			want: 15, // base 10 + streak 5
		},
		{
			name: "month streak stacks with day bonuses",
			bc:   BonusContext{HabitTitle: "Read", HabitStreak: 30, OthersCompletedToday: 0, ActiveHabits: 3},
			want: 25, // base 10 + first 5 + streak 10
		},
		{
			name: "quarter streak",
			bc:   BonusContext{HabitTitle: "Read", HabitStreak: 90, OthersCompletedToday: 1, ActiveHabits: 3},
			want: 25, // base 10 + streak 15
		},
		{
			name: "streak 8 gets no streak bonus",
			bc:   BonusContext{HabitTitle: "Read", HabitStreak: 8, OthersCompletedToday: 1, ActiveHabits: 3},
			want: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reasons := computeAward(tt.bc)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, reasons)
		})
	}
}

func TestComputeAward_MirrorsForUndo(t *testing.T) {
	// Identical contexts must score identically: removal re-derives the
	// pre-undo context and negates the result, so award + undo is a no-op.
	bc := BonusContext{HabitTitle: "Meditate", HabitStreak: 30, OthersCompletedToday: 0, ActiveHabits: 2}
	award, _ := computeAward(bc)
	removal, _ := computeAward(bc)
	assert.Equal(t, 0, award-removal)
}

func TestFallbackAward(t *testing.T) {
	amount, reasons := fallbackAward("Read")
	assert.Equal(t, 10, amount)
	assert.Len(t, reasons, 1)
}
