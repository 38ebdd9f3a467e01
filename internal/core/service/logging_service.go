package service

import (
	"context"
	"time"

	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

const defaultLogLimit = 100

// LoggingService is the central log sink sibling services ship to.
type LoggingService struct {
	repo ports.LogRepository
}

func NewLoggingService(repo ports.LogRepository) *LoggingService {
	return &LoggingService{repo: repo}
}

func (s *LoggingService) Append(ctx context.Context, e domain.LogEntry) (*domain.LogEntry, error) {
	if e.Message == "" {
		return nil, domain.ErrInvalidInput
	}
	if e.Service == "" {
		e.Service = "unknown"
	}
	if e.Level == "" {
		e.Level = domain.LevelInfo
	}
	e.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, &e)
}

func (s *LoggingService) List(ctx context.Context, service, level string, limit int64) ([]domain.LogEntry, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return s.repo.List(ctx, service, level, limit)
}

func (s *LoggingService) Stats(ctx context.Context) (*domain.LogStats, error) {
	return s.repo.Stats(ctx)
}
