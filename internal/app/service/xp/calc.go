package xp

import "fmt"

const baseCompletionXP = 10

// BonusContext is the state the bonus table is evaluated against. For an
// award it describes the world at completion time; for a removal it must be
// re-derived as it stood before the undo, so the removal mirrors the award
// exactly.
type BonusContext struct {
	HabitTitle string
	// HabitStreak is the habit's consecutive-day streak including the
	// completion being scored.
	HabitStreak int
	// OthersCompletedToday counts habits other than this one already
	// completed today.
	OthersCompletedToday int
	// ActiveHabits is the user's total active habit count.
	ActiveHabits int
}

// computeAward applies the bonus table. Bonuses are evaluated independently
// and added to the base.
func computeAward(bc BonusContext) (int, []string) {
	amount := baseCompletionXP
	reasons := []string{fmt.Sprintf("Completed: %s (+%d XP)", bc.HabitTitle, baseCompletionXP)}

	if bc.OthersCompletedToday == 0 {
		amount += 5
		reasons = append(reasons, "First habit of the day (+5 XP)")
	}
	if bc.ActiveHabits > 0 && bc.OthersCompletedToday+1 == bc.ActiveHabits {
		amount += 15
		reasons = append(reasons, "All habits completed today (+15 XP)")
	}
	switch bc.HabitStreak {
	case 7:
		amount += 5
		reasons = append(reasons, "7-day streak (+5 XP)")
	case 30:
		amount += 10
		reasons = append(reasons, "30-day streak (+10 XP)")
	case 90:
		amount += 15
		reasons = append(reasons, "90-day streak (+15 XP)")
	}
	return amount, reasons
}

// fallbackAward is the degraded path used when the bonus-condition lookups
// fail: a flat base grant that keeps the completion non-blocking.
func fallbackAward(title string) (int, []string) {
	return baseCompletionXP, []string{fmt.Sprintf("Completed: %s (+%d XP)", title, baseCompletionXP)}
}
