package models

import "time"

// Completion records that a habit was performed on a calendar day. The
// (habit_id, day) pair is unique: completing twice on the same day upserts
// rather than duplicating, so history scans never need dedup passes.
type Completion struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;index:idx_user_day,priority:1" json:"user_id"`
	// Day is the completion's calendar day as YYYY-MM-DD in UTC.
	Day     string `gorm:"column:day;type:varchar(10);not null;uniqueIndex:uniq_habit_day,priority:2;index:idx_user_day,priority:2" json:"day"`
	HabitID string `gorm:"column:habit_id;type:uuid;not null;uniqueIndex:uniq_habit_day,priority:1" json:"habit_id"`
	// Percentage is the completion degree, 0-100. Only rows at 100 qualify
	// for streak and statistics purposes.
	Percentage  int       `gorm:"column:percentage;type:int;not null;default:100" json:"percentage"`
	CompletedAt time.Time `gorm:"column:completed_at;not null" json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Completion) TableName() string { return "completion" }

// Qualifies reports whether this record counts as "done" for its day.
func (c *Completion) Qualifies() bool {
	return c != nil && c.Percentage >= 100
}
