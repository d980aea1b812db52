package models

import (
	"github.com/atomictrack/atomictrack/pkg/types"
	"time"

	"gorm.io/datatypes"
)

// Payment is one processed payment event from the provider. The unique
// external payment id makes webhook replays visible: a second delivery of the
// same event finds this row and returns without side effects.
type Payment struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	// PaymentID is the provider-side identifier (data.id in the envelope).
	PaymentID string             `gorm:"column:payment_id;type:varchar(128);not null;uniqueIndex" json:"payment_id"`
	Event     types.PaymentEvent `gorm:"column:event;type:varchar(64);not null" json:"event"`
	Amount    int64              `gorm:"column:amount;type:bigint;not null" json:"amount"`
	// Tier granted by this payment.
	Tier        types.SubscriptionTier `gorm:"column:tier;type:varchar(32);not null" json:"tier"`
	ProcessedAt time.Time              `gorm:"column:processed_at;not null" json:"processed_at"`
	Extra       datatypes.JSONMap      `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func (Payment) TableName() string { return "payment" }
