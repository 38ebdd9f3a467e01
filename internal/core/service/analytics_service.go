package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/api/metrics"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

const defaultEventLimit = 100

// ViewDeduper suppresses repeated views of the same resource by the
// same user within a TTL. Backed by Redis; nil disables deduplication.
type ViewDeduper interface {
	IsDuplicate(ctx context.Context, eventType string, resourceID, userID int64) (bool, error)
	Mark(ctx context.Context, eventType string, resourceID, userID int64) error
}

// AnalyticsService tracks and aggregates events.
type AnalyticsService struct {
	repo  ports.EventRepository
	dedup ViewDeduper
	log   zerolog.Logger
}

func NewAnalyticsService(repo ports.EventRepository, dedup ViewDeduper, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, dedup: dedup, log: log}
}

// Track stores an event. Unknown types are kept (labelled as received);
// duplicate property views within the dedup TTL are silently dropped.
func (s *AnalyticsService) Track(ctx context.Context, e domain.Event) (*domain.Event, error) {
	if e.EventType == "" {
		e.EventType = "unknown"
	}
	e.CreatedAt = time.Now().UTC()

	if s.dedup != nil && e.EventType == domain.EventPropertyView && e.UserID != 0 {
		isDup, err := s.dedup.IsDuplicate(ctx, e.EventType, e.ResourceID, e.UserID)
		if err != nil {
			s.log.Warn().Err(err).Msg("view dedup check failed, tracking anyway")
		} else if isDup {
			metrics.AnalyticsDedupTotal.WithLabelValues("hit").Inc()
			return &e, nil
		}
		metrics.AnalyticsDedupTotal.WithLabelValues("miss").Inc()
		if err := s.dedup.Mark(ctx, e.EventType, e.ResourceID, e.UserID); err != nil {
			s.log.Warn().Err(err).Msg("failed to set view dedup key")
		}
	}

	created, err := s.repo.Create(ctx, &e)
	if err != nil {
		return nil, err
	}
	metrics.AnalyticsEventsTotal.WithLabelValues(created.EventType).Inc()
	return created, nil
}

func (s *AnalyticsService) List(ctx context.Context, eventType string) ([]domain.Event, error) {
	return s.repo.List(ctx, eventType, defaultEventLimit)
}

func (s *AnalyticsService) Stats(ctx context.Context) (*domain.EventStats, error) {
	return s.repo.Stats(ctx)
}
