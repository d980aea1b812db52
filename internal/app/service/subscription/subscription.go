package subscription

import (
	"context"
	"fmt"
	models "github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/config"
	"github.com/atomictrack/atomictrack/pkg/logctx"
	"github.com/atomictrack/atomictrack/pkg/tool"
	types "github.com/atomictrack/atomictrack/pkg/types"
	"time"

	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrUserNotFound means the payer's email does not belong to a registered
// account. The webhook surfaces it as a 404 with guidance; nothing is mutated.
var ErrUserNotFound = errors.New("user not found")

type Service struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, log: log}
}

// ResolveUserByEmail maps a payer email to an account. No auto-provisioning:
// unknown payers must register first.
func (s *Service) ResolveUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &u, nil
}

// ApplyApprovedPayment grants the founder tier for a one-time payment.
// Idempotent on the external payment id: a replay reports alreadyProcessed
// and leaves every row untouched.
func (s *Service) ApplyApprovedPayment(ctx context.Context, user *models.User, data *types.WebhookData) (alreadyProcessed bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Payment
		err := tx.Where("payment_id = ?", data.ID).First(&existing).Error
		if err == nil {
			alreadyProcessed = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check payment: %w", err)
		}

		now := time.Now()
		payment := &models.Payment{
			ID:          tool.GenerateUUIDV7(),
			UserID:      user.ID,
			PaymentID:   data.ID,
			Event:       types.PaymentEventApproved,
			Amount:      int64(data.Amount * 100),
			Tier:        types.SubscriptionTierFounder,
			ProcessedAt: now,
			Extra: datatypes.JSONMap{
				"customer_name":  data.Customer.Name,
				"customer_email": data.Customer.Email,
			},
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		expire := now.AddDate(0, 0, s.founderDurationDays())
		sub := &models.Subscription{
			UserID:    user.ID,
			Tier:      types.SubscriptionTierFounder,
			Status:    types.SubscriptionStatusActive,
			PaymentID: data.ID,
			StartedAt: now,
			ExpireAt:  &expire,
		}
		if err := s.upsertSubscription(ctx, tx, sub, types.SubscriptionChangeReasonPayment); err != nil {
			return err
		}
		return s.setProfileTier(ctx, tx, user.ID, types.ProfileTierFounder)
	})
	if err != nil {
		return false, fmt.Errorf("failed to apply approved payment: %w", err)
	}
	if alreadyProcessed {
		logctx.FromCtx(ctx, s.log).Infow("payment already processed", "payment_id", data.ID, "user_id", user.ID)
	}
	return alreadyProcessed, nil
}

// ApplyRecurring upserts a pro subscription for created/renewed events. The
// expiry is derived from the plan interval.
func (s *Service) ApplyRecurring(ctx context.Context, user *models.User, data *types.WebhookData, reason types.SubscriptionChangeReason) error {
	interval := types.PlanIntervalMonth
	paymentID := data.ID
	if data.Subscription != nil {
		interval = data.Subscription.Plan.Interval
		if data.Subscription.ID != "" {
			paymentID = data.Subscription.ID
		}
	}
	days := 30
	if interval == types.PlanIntervalYear {
		days = 365
	}

	now := time.Now()
	expire := now.AddDate(0, 0, days)
	sub := &models.Subscription{
		UserID:    user.ID,
		Tier:      types.SubscriptionTierPro,
		Status:    types.SubscriptionStatusActive,
		PaymentID: paymentID,
		StartedAt: now,
		ExpireAt:  &expire,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.upsertSubscription(ctx, tx, sub, reason); err != nil {
			return err
		}
		return s.setProfileTier(ctx, tx, user.ID, types.ProfileTierPro)
	})
	if err != nil {
		return fmt.Errorf("failed to apply recurring payment: %w", err)
	}
	return nil
}

// Cancel marks the user's subscription cancelled with immediate expiry.
func (s *Service) Cancel(ctx context.Context, user *models.User, reason types.SubscriptionChangeReason) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		if err := tx.Where("user_id = ?", user.ID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load subscription: %w", err)
		}
		now := time.Now()
		sub.Status = types.SubscriptionStatusCancelled
		sub.ExpireAt = &now
		if err := s.upsertSubscription(ctx, tx, &sub, reason); err != nil {
			return err
		}
		return s.setProfileTier(ctx, tx, user.ID, types.ProfileTierFree)
	})
	if err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}

// Current returns the user's subscription info, applying the read-time
// validity check: an "active" row past its expiry grants nothing.
func (s *Service) Current(ctx context.Context, userID string) (*types.UserSubscriptionInfo, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	info := &types.UserSubscriptionInfo{
		Tier:     sub.Tier,
		Status:   sub.Status,
		ExpireAt: sub.ExpireAt,
	}
	if !sub.Valid() {
		info.Status = types.SubscriptionStatusExpired
	}
	return info, nil
}

func (s *Service) founderDurationDays() int {
	if d := s.cfg.Payment.FounderDurationDays; d > 0 {
		return d
	}
	return 90
}

func (s *Service) upsertSubscription(ctx context.Context, tx *gorm.DB, m *models.Subscription, reason types.SubscriptionChangeReason) error {
	var original models.Subscription
	if err := tx.WithContext(ctx).Where("user_id = ?", m.UserID).First(&original).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to get original subscription: %w", err)
		}
	}

	if original.ID != "" {
		m.ID = original.ID
		m.CreatedAt = original.CreatedAt
	} else if m.ID == "" {
		m.ID = tool.GenerateUUIDV7()
	}

	before := func() *models.Subscription {
		if original.ID == "" {
			return nil
		}
		cp := original
		return &cp
	}()

	if err := tx.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	// Change log is best effort, written outside the transaction.
	go func(b *models.Subscription, a models.Subscription) {
		entry := &models.SubscriptionLog{
			ID:     tool.GenerateUUIDV7(),
			UserID: a.UserID,
			Reason: reason,
			Before: datatypes.NewJSONType(b),
			After:  datatypes.NewJSONType(&a),
			Extra:  datatypes.JSONMap{},
		}
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save subscription log: %v", err)
		}
	}(before, *m)

	return nil
}

func (s *Service) setProfileTier(ctx context.Context, tx *gorm.DB, userID string, tier types.ProfileTier) error {
	var profile models.Profile
	err := tx.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			ID:     tool.GenerateUUIDV7(),
			UserID: userID,
			Level:  1,
		}
	} else if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	// Admin accounts keep their tier regardless of payment traffic.
	if profile.Tier == types.ProfileTierAdmin {
		return nil
	}
	profile.Tier = tier
	if err := tx.WithContext(ctx).Save(&profile).Error; err != nil {
		return fmt.Errorf("failed to update profile tier: %w", err)
	}
	return nil
}
