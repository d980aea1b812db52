package habit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomictrack/atomictrack/internal/app/service/stats"
	"github.com/atomictrack/atomictrack/internal/app/service/xp"
	"github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/logctx"
	"github.com/atomictrack/atomictrack/pkg/tool"
	"github.com/atomictrack/atomictrack/pkg/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	// ErrAlreadyCompleted rejects a complete() against a habit already
	// completed today; the transition is guarded, not idempotent.
	ErrAlreadyCompleted = errors.New("habit already completed today")
	// ErrNotCompletedToday rejects an undo against a habit with no
	// completion today, before any storage mutation.
	ErrNotCompletedToday = errors.New("habit is not completed today")
	// ErrConflict means the habit row's version moved under the caller;
	// the operation was not applied and can be retried.
	ErrConflict = errors.New("habit was modified concurrently")
	ErrInactive = errors.New("habit is not active")
)

// Service owns the habit lifecycle and the complete/undo protocol. Habit row
// and profile XP always move in one transaction; the completion log is the
// source of truth for every streak figure the row carries.
type Service struct {
	db       *gorm.DB
	xpSvc    *xp.Service
	statsSvc *stats.Service
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewService(db *gorm.DB, xpSvc *xp.Service, statsSvc *stats.Service, log *zap.SugaredLogger) *Service {
	return &Service{db: db, xpSvc: xpSvc, statsSvc: statsSvc, log: log, now: time.Now}
}

type CreateInput struct {
	Title      string `json:"title" binding:"required"`
	Prompt     string `json:"prompt"`
	Location   string `json:"location"`
	TargetQty  int    `json:"target_qty"`
	TargetUnit string `json:"target_unit"`
}

type UpdateInput struct {
	Title      *string            `json:"title"`
	Prompt     *string            `json:"prompt"`
	Location   *string            `json:"location"`
	TargetQty  *int               `json:"target_qty"`
	TargetUnit *string            `json:"target_unit"`
	Status     *types.HabitStatus `json:"status"`
}

// CompletionResult is returned by Complete and Undo.
type CompletionResult struct {
	Habit *models.Habit `json:"habit"`
	XP    *xp.Result    `json:"xp"`
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*models.Habit, error) {
	if in.TargetQty <= 0 {
		in.TargetQty = 1
	}
	h := &models.Habit{
		ID:         tool.GenerateUUIDV7(),
		UserID:     userID,
		Title:      in.Title,
		Prompt:     in.Prompt,
		Location:   in.Location,
		TargetQty:  in.TargetQty,
		TargetUnit: in.TargetUnit,
		Status:     types.HabitStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(h).Error; err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	s.statsSvc.Invalidate(ctx, userID)
	return h, nil
}

func (s *Service) Get(ctx context.Context, userID, habitID string) (*models.Habit, error) {
	return s.getOwned(ctx, s.db, userID, habitID)
}

func (s *Service) Update(ctx context.Context, userID, habitID string, in UpdateInput) (*models.Habit, error) {
	h, err := s.getOwned(ctx, s.db, userID, habitID)
	if err != nil {
		return nil, err
	}

	changed := false
	if in.Title != nil && *in.Title != h.Title {
		h.Title = *in.Title
		changed = true
	}
	if in.Prompt != nil && *in.Prompt != h.Prompt {
		h.Prompt = *in.Prompt
		changed = true
	}
	if in.Location != nil && *in.Location != h.Location {
		h.Location = *in.Location
		changed = true
	}
	if in.TargetQty != nil && *in.TargetQty > 0 && *in.TargetQty != h.TargetQty {
		h.TargetQty = *in.TargetQty
		changed = true
	}
	if in.TargetUnit != nil && *in.TargetUnit != h.TargetUnit {
		h.TargetUnit = *in.TargetUnit
		changed = true
	}
	if in.Status != nil && *in.Status != h.Status {
		h.Status = *in.Status
		changed = true
	}
	if !changed {
		return h, nil
	}

	res := s.db.WithContext(ctx).Model(&models.Habit{}).
		Where("id = ? AND version = ?", h.ID, h.Version).
		Updates(map[string]any{
			"title":       h.Title,
			"prompt":      h.Prompt,
			"location":    h.Location,
			"target_qty":  h.TargetQty,
			"target_unit": h.TargetUnit,
			"status":      h.Status,
			"version":     h.Version + 1,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update habit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	h.Version++
	s.statsSvc.Invalidate(ctx, userID)
	return h, nil
}

// Delete physically removes a habit and its completion history. Archiving is
// the soft path; this is the explicit one.
func (s *Service) Delete(ctx context.Context, userID, habitID string) error {
	h, err := s.getOwned(ctx, s.db, userID, habitID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", h.ID).Delete(&models.Completion{}).Error; err != nil {
			return fmt.Errorf("failed to delete completions: %w", err)
		}
		if err := tx.Delete(&models.Habit{}, "id = ?", h.ID).Error; err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.statsSvc.Invalidate(ctx, userID)
	return nil
}

// Complete transitions a habit from pending to completed for today. The
// completion row, the derived streak figures on the habit row, and the XP
// award commit or roll back as one unit.
func (s *Service) Complete(ctx context.Context, userID, habitID string) (*CompletionResult, error) {
	h, err := s.getOwned(ctx, s.db, userID, habitID)
	if err != nil {
		return nil, err
	}
	if h.Status != types.HabitStatusActive {
		return nil, ErrInactive
	}
	now := s.now()
	if h.CompletedOn(now) {
		return nil, ErrAlreadyCompleted
	}

	var xpRes *xp.Result
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		completion := &models.Completion{
			ID:          tool.GenerateUUIDV7(),
			UserID:      userID,
			HabitID:     h.ID,
			Day:         tool.DayKey(now),
			Percentage:  100,
			CompletedAt: now,
		}
		// The unique (habit_id, day) key makes a same-day re-complete an
		// upsert, never a duplicate row.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"percentage", "completed_at"}),
		}).Create(completion).Error; err != nil {
			return fmt.Errorf("failed to record completion: %w", err)
		}

		current, longest, total, err := s.deriveStreak(ctx, tx, h.ID, now)
		if err != nil {
			return fmt.Errorf("failed to derive streak: %w", err)
		}

		if err := s.casUpdate(ctx, tx, h, map[string]any{
			"streak":            current,
			"longest_streak":    longest,
			"total_completions": total,
			"last_completed":    now,
			"goal_current":      100,
		}); err != nil {
			return err
		}

		xpRes, err = s.xpSvc.AwardForCompletion(ctx, tx, xp.Input{
			UserID:     userID,
			HabitID:    h.ID,
			HabitTitle: h.Title,
			Streak:     current,
		})
		if err != nil {
			return fmt.Errorf("failed to award xp: %w", err)
		}

		h.Streak = current
		h.LongestStreak = longest
		h.TotalCompletions = total
		h.LastCompleted = &now
		h.GoalCurrent = 100
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.statsSvc.Invalidate(ctx, userID)
	logctx.FromCtx(ctx, s.log).Infow("habit completed",
		"habit_id", h.ID, "user_id", userID, "streak", h.Streak, "xp_delta", xpRes.XPDelta)
	return &CompletionResult{Habit: h, XP: xpRes}, nil
}

// Undo reverses today's completion. The guard runs before any write; the XP
// removal is computed against the pre-undo state so it mirrors the award.
func (s *Service) Undo(ctx context.Context, userID, habitID string) (*CompletionResult, error) {
	h, err := s.getOwned(ctx, s.db, userID, habitID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !h.CompletedOn(now) {
		return nil, ErrNotCompletedToday
	}

	var xpRes *xp.Result
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Remove XP first, while today's completion row still exists: the
		// bonus conditions must be evaluated as they stood before the undo.
		preCurrent, _, _, err := s.deriveStreak(ctx, tx, h.ID, now)
		if err != nil {
			return fmt.Errorf("failed to derive streak: %w", err)
		}
		xpRes, err = s.xpSvc.RemoveForUndo(ctx, tx, xp.Input{
			UserID:     userID,
			HabitID:    h.ID,
			HabitTitle: h.Title,
			Streak:     preCurrent,
		})
		if err != nil {
			return fmt.Errorf("failed to remove xp: %w", err)
		}

		if err := tx.Where("habit_id = ? AND day = ?", h.ID, tool.DayKey(now)).
			Delete(&models.Completion{}).Error; err != nil {
			return fmt.Errorf("failed to delete completion: %w", err)
		}

		current, longest, total, err := s.deriveStreak(ctx, tx, h.ID, now)
		if err != nil {
			return fmt.Errorf("failed to derive streak: %w", err)
		}
		lastCompleted, err := s.lastQualifyingDay(ctx, tx, h.ID)
		if err != nil {
			return fmt.Errorf("failed to find last completion: %w", err)
		}

		if err := s.casUpdate(ctx, tx, h, map[string]any{
			"streak":            current,
			"longest_streak":    longest,
			"total_completions": total,
			"last_completed":    lastCompleted,
			"goal_current":      0,
		}); err != nil {
			return err
		}

		h.Streak = current
		h.LongestStreak = longest
		h.TotalCompletions = total
		h.LastCompleted = lastCompleted
		h.GoalCurrent = 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.statsSvc.Invalidate(ctx, userID)
	logctx.FromCtx(ctx, s.log).Infow("habit completion undone",
		"habit_id", h.ID, "user_id", userID, "xp_delta", xpRes.XPDelta)
	return &CompletionResult{Habit: h, XP: xpRes}, nil
}

func (s *Service) getOwned(ctx context.Context, db *gorm.DB, userID, habitID string) (*models.Habit, error) {
	var h models.Habit
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", habitID, userID).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load habit: %w", err)
	}
	return &h, nil
}

// casUpdate applies updates guarded by the habit's version. A zero-row result
// means a concurrent writer won; the caller's transaction aborts.
func (s *Service) casUpdate(ctx context.Context, tx *gorm.DB, h *models.Habit, updates map[string]any) error {
	updates["version"] = h.Version + 1
	res := tx.WithContext(ctx).Model(&models.Habit{}).
		Where("id = ? AND version = ?", h.ID, h.Version).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update habit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	h.Version++
	return nil
}

// deriveStreak recomputes the habit's streak figures from its completion log.
func (s *Service) deriveStreak(ctx context.Context, tx *gorm.DB, habitID string, today time.Time) (current, longest, total int, err error) {
	var recs []stats.CompletionRecord
	if err := tx.WithContext(ctx).Model(&models.Completion{}).
		Select("day", "percentage").
		Where("habit_id = ?", habitID).
		Find(&recs).Error; err != nil {
		return 0, 0, 0, err
	}
	sum := stats.Compute(recs, 0, today)
	return sum.CurrentStreak, sum.LongestStreak, sum.TotalCompletions, nil
}

func (s *Service) lastQualifyingDay(ctx context.Context, tx *gorm.DB, habitID string) (*time.Time, error) {
	var c models.Completion
	err := tx.WithContext(ctx).
		Where("habit_id = ? AND percentage >= 100", habitID).
		Order("day desc").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := c.CompletedAt
	return &t, nil
}
