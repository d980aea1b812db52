package habit

import (
	"context"

	models "github.com/atomictrack/atomictrack/internal/models"
)

// Manager drives the habit lifecycle and the completion protocol.
type Manager interface {
	Create(ctx context.Context, userID string, in CreateInput) (*models.Habit, error)
	Get(ctx context.Context, userID, habitID string) (*models.Habit, error)
	// Scan habits (used by list pages).
	Scan(ctx context.Context, userID string, req *ScanHabitsRequest) (*ScanHabitsResponse, error)
	Update(ctx context.Context, userID, habitID string, in UpdateInput) (*models.Habit, error)
	Delete(ctx context.Context, userID, habitID string) error
	// Complete marks the habit done for today and awards XP.
	Complete(ctx context.Context, userID, habitID string) (*CompletionResult, error)
	// Undo reverses today's completion and removes the awarded XP.
	Undo(ctx context.Context, userID, habitID string) (*CompletionResult, error)
}

var _ Manager = (*Service)(nil)
