package models

import "time"

// User is the account record. The payment webhook resolves payers to users by
// email; there is no auto-provisioning, so a missing row is a hard 404.
type User struct {
	ID          string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Email       string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	DisplayName string    `gorm:"column:display_name;type:varchar(128)" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string { return "app_user" }
