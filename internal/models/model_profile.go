package models

import (
	"time"

	"github.com/atomictrack/atomictrack/pkg/levels"
	"github.com/atomictrack/atomictrack/pkg/types"
)

// Profile carries per-user gamification state. XP never drops below zero and
// Level is recomputed from XP on every mutation; the two are never written
// independently.
type Profile struct {
	ID          string            `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID      string            `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex" json:"user_id"`
	DisplayName string            `gorm:"column:display_name;type:varchar(128)" json:"display_name"`
	XP          int               `gorm:"column:xp;type:bigint;not null;default:0" json:"xp"`
	Level       int               `gorm:"column:level;type:int;not null;default:1" json:"level"`
	Tier        types.ProfileTier `gorm:"column:tier;type:varchar(32);not null;default:'free'" json:"tier"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Profile) TableName() string { return "profile" }

// ApplyXPDelta adds delta to XP, clamping at zero, and keeps Level in
// lockstep with the level table.
func (p *Profile) ApplyXPDelta(delta int) {
	p.XP += delta
	if p.XP < 0 {
		p.XP = 0
	}
	p.Level = levels.LevelForXP(p.XP)
}
