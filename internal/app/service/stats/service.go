package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/internal/platform/cache"
	"github.com/atomictrack/atomictrack/pkg/logctx"
	"github.com/atomictrack/atomictrack/pkg/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const summaryCacheTTL = 10 * time.Minute

// Service derives display statistics from completion history. Read-only: it
// never mutates habit rows, so it can disagree with nothing (the habit row's
// streak is derived from the same history on every write).
type Service struct {
	db    *gorm.DB
	cache *cache.Client
	log   *zap.SugaredLogger
	// now is the server-authoritative clock; client dates are never trusted.
	now func() time.Time
}

func NewService(db *gorm.DB, c *cache.Client, log *zap.SugaredLogger) *Service {
	return &Service{db: db, cache: c, log: log, now: time.Now}
}

func summaryCacheKey(userID string) string { return "stats:summary:" + userID }

// Summary computes the user's cross-habit completion statistics, serving from
// cache when warm. Cache failures degrade to the database silently.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	var cached Summary
	if err := s.cache.GetJSON(ctx, summaryCacheKey(userID), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		logctx.FromCtx(ctx, s.log).Warnw("stats cache read failed", "user_id", userID, "err", err)
	}

	recs, err := s.completionHistory(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load completion history: %w", err)
	}

	var active int64
	if err := s.db.WithContext(ctx).Model(&models.Habit{}).
		Where("user_id = ? AND status = ?", userID, types.HabitStatusActive).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active habits: %w", err)
	}

	sum := Compute(recs, int(active), s.now())
	if err := s.cache.SetJSON(ctx, summaryCacheKey(userID), sum, summaryCacheTTL); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("stats cache write failed", "user_id", userID, "err", err)
	}
	return &sum, nil
}

// HabitStreak derives a single habit's streak figures from its history.
func (s *Service) HabitStreak(ctx context.Context, userID, habitID string) (current, longest int, err error) {
	recs, err := s.completionHistory(ctx, userID, habitID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load completion history: %w", err)
	}
	current, longest = StreakFor(recs, s.now())
	return current, longest, nil
}

// WeeklyDataItem is one day of the weekly completion series.
type WeeklyDataItem struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

// Weekly returns qualifying completion counts per day over the last seven
// days, including empty days.
func (s *Service) Weekly(ctx context.Context, userID string) ([]WeeklyDataItem, error) {
	var results []WeeklyDataItem
	err := s.db.WithContext(ctx).Raw(`
WITH days AS (
    SELECT generate_series(CURRENT_DATE - INTERVAL '6 days', CURRENT_DATE, '1 day'::interval)::date AS d
)
SELECT TO_CHAR(days.d, 'YYYY-MM-DD') AS date, COUNT(c.id) AS value
FROM days
LEFT JOIN completion c
  ON c.day = TO_CHAR(days.d, 'YYYY-MM-DD')
 AND c.user_id = ?
 AND c.percentage >= 100
GROUP BY days.d
ORDER BY days.d
`, userID).Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly stats: %w", err)
	}
	return results, nil
}

// Invalidate drops the user's cached summary. Called by the completion
// protocol after every successful complete/undo.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	s.cache.Delete(ctx, summaryCacheKey(userID))
}

func (s *Service) completionHistory(ctx context.Context, userID, habitID string) ([]CompletionRecord, error) {
	q := s.db.WithContext(ctx).Model(&models.Completion{}).
		Select("day", "percentage").
		Where("user_id = ?", userID)
	if habitID != "" {
		q = q.Where("habit_id = ?", habitID)
	}
	var recs []CompletionRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
