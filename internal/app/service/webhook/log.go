package webhook

import (
	"context"
	"github.com/atomictrack/atomictrack/internal/models"
	"github.com/atomictrack/atomictrack/pkg/logctx"
	"github.com/atomictrack/atomictrack/pkg/tool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LogService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewLogService(db *gorm.DB, log *zap.SugaredLogger) *LogService {
	return &LogService{db: db, log: log}
}

// Save asynchronously persists a webhook delivery log. Nil input is ignored.
func (s *LogService) Save(ctx context.Context, entry *models.WebhookLog) {
	go func() {
		if entry == nil {
			return
		}
		if entry.ID == "" {
			entry.ID = tool.GenerateUUIDV7()
		}
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save webhook log: %v", err)
		}
	}()
}
