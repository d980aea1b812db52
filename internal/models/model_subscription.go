package models

import (
	"github.com/atomictrack/atomictrack/pkg/types"
	"time"

	"gorm.io/datatypes"
)

// Subscription grants paid access. At most one row per user; Valid() decides
// whether it currently grants access, so a stale "active" row with a past
// expiry never does.
type Subscription struct {
	ID     string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string                   `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex" json:"user_id"`
	Tier   types.SubscriptionTier   `gorm:"column:tier;type:varchar(32);not null" json:"tier"`
	Status types.SubscriptionStatus `gorm:"column:status;type:varchar(64);not null" json:"status"`
	// PaymentID is the external payment identifier of the purchase that
	// produced the current state. Webhook idempotency is keyed on it.
	PaymentID string    `gorm:"column:payment_id;type:varchar(128);not null;index" json:"payment_id"`
	StartedAt time.Time `gorm:"column:started_at;not null" json:"started_at"`
	// ExpireAt is nil only for tiers without a time limit.
	ExpireAt *time.Time `gorm:"column:expire_at;default:null" json:"expire_at"`
	// Extra stores provider payload details (amount, customer name).
	Extra     datatypes.JSONMap `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Subscription) TableName() string { return "subscription" }

// Valid reports whether the subscription grants access right now. Expiry is
// checked at read time; no background job flips statuses.
func (s *Subscription) Valid() bool {
	return s != nil &&
		s.Status == types.SubscriptionStatusActive &&
		(s.ExpireAt == nil || s.ExpireAt.After(time.Now()))
}
