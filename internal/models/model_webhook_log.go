package models

import (
	"time"

	"gorm.io/datatypes"
)

type WebhookLogStatus string

const (
	WebhookLogStatusReceived     WebhookLogStatus = "received"
	WebhookLogStatusHandled      WebhookLogStatus = "handled"
	WebhookLogStatusHandleFailed WebhookLogStatus = "handle_failed"
)

// WebhookLog stores every inbound payment webhook delivery and its outcome.
type WebhookLog struct {
	ID        string           `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Event     string           `gorm:"column:event;type:varchar(64);not null" json:"event"`
	UserID    *string          `gorm:"column:user_id;type:varchar(64)" json:"user_id"`
	TraceID   string           `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	PaymentID string           `gorm:"column:payment_id;type:varchar(128)" json:"payment_id"`
	Data      datatypes.JSON   `gorm:"column:data;type:jsonb" json:"data"`
	Result    *datatypes.JSON  `gorm:"column:result;type:jsonb" json:"result"`
	Status    WebhookLogStatus `gorm:"column:status;type:varchar(64);not null" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (WebhookLog) TableName() string { return "webhook_log" }
