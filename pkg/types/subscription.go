package types

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// SubscriptionTier is the paid access tier granted by a subscription.
type SubscriptionTier string

const (
	SubscriptionTierFounder    SubscriptionTier = "founder"
	SubscriptionTierPro        SubscriptionTier = "pro"
	SubscriptionTierEnterprise SubscriptionTier = "enterprise"
)

// ProfileTier is the access tier stored on a user profile. It mirrors the
// subscription tier while a paid subscription is current, "free" otherwise.
type ProfileTier string

const (
	ProfileTierFree    ProfileTier = "free"
	ProfileTierFounder ProfileTier = "founder"
	ProfileTierPro     ProfileTier = "pro"
	ProfileTierAdmin   ProfileTier = "admin"
)

type SubscriptionChangeReason string

const (
	SubscriptionChangeReasonPayment SubscriptionChangeReason = "payment"
	SubscriptionChangeReasonRenew   SubscriptionChangeReason = "renew"
	SubscriptionChangeReasonCancel  SubscriptionChangeReason = "cancel"
	SubscriptionChangeReasonExpire  SubscriptionChangeReason = "expire"
)

type UserSubscriptionInfo struct {
	Tier     SubscriptionTier   `json:"tier"`
	Status   SubscriptionStatus `json:"status"`
	ExpireAt *time.Time         `json:"expire_at"`
}
