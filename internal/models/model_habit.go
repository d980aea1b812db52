package models

import (
	"time"

	"github.com/atomictrack/atomictrack/pkg/types"
)

// Habit is a trackable behavior. Streak, LongestStreak and TotalCompletions
// are derived from the completion history on every write; the completion log
// is the single source of truth (the habit row is a read-model of it).
type Habit struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	Title  string `gorm:"column:title;type:varchar(255);not null" json:"title"`
	// Prompt and Location come from the habit-stacking formula: "After
	// <prompt>, I will <title> at <location>".
	Prompt     string `gorm:"column:prompt;type:varchar(255)" json:"prompt"`
	Location   string `gorm:"column:location;type:varchar(255)" json:"location"`
	TargetQty  int    `gorm:"column:target_qty;type:int;not null;default:1" json:"target_qty"`
	TargetUnit string `gorm:"column:target_unit;type:varchar(64)" json:"target_unit"`
	// GoalCurrent is today's completion degree, 0-100.
	GoalCurrent      int               `gorm:"column:goal_current;type:int;not null;default:0" json:"goal_current"`
	Streak           int               `gorm:"column:streak;type:int;not null;default:0" json:"streak"`
	LongestStreak    int               `gorm:"column:longest_streak;type:int;not null;default:0" json:"longest_streak"`
	TotalCompletions int               `gorm:"column:total_completions;type:int;not null;default:0" json:"total_completions"`
	LastCompleted    *time.Time        `gorm:"column:last_completed;default:null" json:"last_completed"`
	Status           types.HabitStatus `gorm:"column:status;type:varchar(32);not null;default:'active'" json:"status"`
	// Version guards concurrent complete/undo on the same habit. Updates
	// carry WHERE version = ? and bump it; a miss means the row moved
	// underneath the caller.
	Version   int64     `gorm:"column:version;type:bigint;not null;default:0" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Habit) TableName() string { return "habit" }

// CompletedOn reports whether the habit's last completion falls on the given
// calendar day (UTC).
func (h *Habit) CompletedOn(day time.Time) bool {
	if h == nil || h.LastCompleted == nil {
		return false
	}
	ly, lm, ld := h.LastCompleted.UTC().Date()
	y, m, d := day.UTC().Date()
	return ly == y && lm == m && ld == d
}
