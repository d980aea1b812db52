package models

import (
	"time"

	"gorm.io/datatypes"
)

// XPLog records every XP award and removal.
// Use case: troubleshooting, and auditing that undo removed exactly what the
// matching completion granted.
type XPLog struct {
	ID      string `gorm:"column:id;type:uuid;primary_key"`
	UserID  string `gorm:"column:user_id;type:varchar(64);index:idx_user_id_id,priority:1;not null"`
	HabitID string `gorm:"column:habit_id;type:uuid;not null"`
	// Delta is the signed XP change; negative for undo removals.
	Delta int `gorm:"column:delta;type:int;not null"`
	// Reasons lists the human-readable bonus lines that produced Delta.
	Reasons datatypes.JSONSlice[string] `gorm:"column:reasons;type:jsonb;default:'[]'"`
	// Before stores profile state before the change in JSON format.
	Before datatypes.JSONType[*Profile] `gorm:"column:before;type:jsonb;default:'null'"`
	// After stores profile state after the change in JSON format.
	After     datatypes.JSONType[*Profile] `gorm:"column:after;type:jsonb;default:'null'"`
	CreatedAt time.Time
}

func (XPLog) TableName() string {
	return "xp_log"
}
