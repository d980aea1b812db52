package habit

import (
	"context"
	"fmt"

	"github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/types"

	"gorm.io/gorm/clause"
)

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

type ScanHabitsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanHabitsResponse struct {
	Items []*models.Habit `json:"items"`
	Total int64           `json:"total"`
}

// Scan implements paginated habit listing with filters. The owner filter is
// forced; callers cannot widen the scan past their own rows.
func (s *Service) Scan(ctx context.Context, userID string, req *ScanHabitsRequest) (*ScanHabitsResponse, error) {
	if req == nil {
		req = &ScanHabitsRequest{}
	}
	if req.Size <= 0 {
		req.Size = 50
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Habit{}).Where("user_id = ?", userID)
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count habits: %w", err)
	}

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy == "" {
		req.SortBy = "created_at"
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})

	var rows []*models.Habit
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return &ScanHabitsResponse{Items: rows, Total: total}, nil
}
