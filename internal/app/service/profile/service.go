package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/tool"
	"github.com/atomictrack/atomictrack/pkg/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service reads per-user gamification state. Profiles are mutated only by the
// completion protocol and the payment flow; this package never writes.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Get returns the user's profile. A user with no profile row yet is reported
// as a fresh level-1 free profile without persisting anything.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Profile{
			UserID: userID,
			Level:  1,
			Tier:   types.ProfileTierFree,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// UpdateDisplayName sets the profile's display name, creating the row when
// missing.
func (s *Service) UpdateDisplayName(ctx context.Context, userID, name string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.Profile{
			UserID: userID,
			Level:  1,
			Tier:   types.ProfileTierFree,
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	p.DisplayName = name
	if p.ID == "" {
		p.ID = tool.GenerateUUIDV7()
		if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return &p, nil
	}
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &p, nil
}
