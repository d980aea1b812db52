package xp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/logctx"
	"github.com/atomictrack/atomictrack/pkg/tool"
	"github.com/atomictrack/atomictrack/pkg/types"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result reports the outcome of an XP mutation.
type Result struct {
	XPDelta  int      `json:"xp_delta"`
	Reasons  []string `json:"reasons"`
	OldLevel int      `json:"old_level"`
	NewLevel int      `json:"new_level"`
	// LeveledUp is set on awards that cross a tier boundary. Removals never
	// surface a level decrease as a distinct event.
	LeveledUp bool `json:"leveled_up"`
	// Degraded marks the fallback path where bonus lookups failed and a
	// flat base amount was applied instead.
	Degraded bool `json:"-"`
}

// Service computes and applies XP awards and removals. Both entry points run
// inside the caller's transaction so the habit row and the profile can never
// desynchronize on partial failure.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Input identifies the completion being scored. Streak is the habit's derived
// consecutive-day streak including today's completion (for an undo, the
// streak as it stood while the completion was still present).
type Input struct {
	UserID     string
	HabitID    string
	HabitTitle string
	Streak     int
}

// AwardForCompletion grants XP for a completion inside tx. If the bonus
// lookups fail the award degrades to a flat base grant rather than aborting
// the completion.
func (s *Service) AwardForCompletion(ctx context.Context, tx *gorm.DB, in Input) (*Result, error) {
	bc, err := s.bonusContext(ctx, tx, in)
	var amount int
	var reasons []string
	degraded := false
	if err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("xp bonus lookup failed, applying flat award",
			"user_id", in.UserID, "habit_id", in.HabitID, "err", err)
		amount, reasons = fallbackAward(in.HabitTitle)
		degraded = true
	} else {
		amount, reasons = computeAward(*bc)
	}
	res, err := s.apply(ctx, tx, in, amount, reasons)
	if err != nil {
		return nil, err
	}
	res.Degraded = degraded
	return res, nil
}

// RemoveForUndo takes back exactly what the matching completion granted. The
// bonus conditions are re-derived as they stood before the undo; XP is
// clamped at zero.
func (s *Service) RemoveForUndo(ctx context.Context, tx *gorm.DB, in Input) (*Result, error) {
	bc, err := s.preUndoBonusContext(ctx, tx, in)
	var amount int
	var reasons []string
	degraded := false
	if err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("xp bonus lookup failed, applying flat removal",
			"user_id", in.UserID, "habit_id", in.HabitID, "err", err)
		amount, reasons = fallbackAward(in.HabitTitle)
		degraded = true
	} else {
		amount, reasons = computeAward(*bc)
	}
	for i, r := range reasons {
		reasons[i] = "Undo: " + r
	}
	res, err := s.apply(ctx, tx, in, -amount, reasons)
	if err != nil {
		return nil, err
	}
	res.Degraded = degraded
	// By contract undo never reports a level change event.
	res.LeveledUp = false
	return res, nil
}

// bonusContext loads the award-time bonus inputs: habits other than this one
// already completed today, and the user's active habit count.
func (s *Service) bonusContext(ctx context.Context, tx *gorm.DB, in Input) (*BonusContext, error) {
	today := tool.DayKey(time.Now())

	var others int64
	if err := tx.WithContext(ctx).Model(&models.Completion{}).
		Where("user_id = ? AND day = ? AND percentage >= 100 AND habit_id <> ?", in.UserID, today, in.HabitID).
		Count(&others).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's completions: %w", err)
	}

	var active int64
	if err := tx.WithContext(ctx).Model(&models.Habit{}).
		Where("user_id = ? AND status = ?", in.UserID, types.HabitStatusActive).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active habits: %w", err)
	}

	return &BonusContext{
		HabitTitle:           in.HabitTitle,
		HabitStreak:          in.Streak,
		OthersCompletedToday: int(others),
		ActiveHabits:         int(active),
	}, nil
}

// preUndoBonusContext reconstructs the award-time context while the
// completion being undone still exists: the habit's own row is excluded from
// the "already completed" count, mirroring bonusContext exactly.
func (s *Service) preUndoBonusContext(ctx context.Context, tx *gorm.DB, in Input) (*BonusContext, error) {
	return s.bonusContext(ctx, tx, in)
}

// apply performs the read-modify-write on the profile in a single update and
// records an audit row.
func (s *Service) apply(ctx context.Context, tx *gorm.DB, in Input, delta int, reasons []string) (*Result, error) {
	var profile models.Profile
	if err := tx.WithContext(ctx).Where("user_id = ?", in.UserID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.Profile{
				ID:     tool.GenerateUUIDV7(),
				UserID: in.UserID,
				Level:  1,
				Tier:   types.ProfileTierFree,
			}
		} else {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
	}

	before := profile
	profile.ApplyXPDelta(delta)

	if err := tx.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile xp: %w", err)
	}

	// Audit log is best effort, written outside the transaction.
	go func(b, a models.Profile) {
		entry := &models.XPLog{
			ID:      tool.GenerateUUIDV7(),
			UserID:  in.UserID,
			HabitID: in.HabitID,
			Delta:   delta,
			Reasons: datatypes.NewJSONSlice(reasons),
			Before:  datatypes.NewJSONType(&b),
			After:   datatypes.NewJSONType(&a),
		}
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save xp log: %v", err)
		}
	}(before, profile)

	return &Result{
		XPDelta:   delta,
		Reasons:   reasons,
		OldLevel:  before.Level,
		NewLevel:  profile.Level,
		LeveledUp: profile.Level > before.Level,
	}, nil
}
