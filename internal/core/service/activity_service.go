package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bibliotekopol/library-system/internal/api/metrics"
	"github.com/bibliotekopol/library-system/internal/core/domain"
	"github.com/bibliotekopol/library-system/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that records loan events
// into the audit trail.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process persists a single loan event. Failures are reported to the caller
// (the dispatcher worker) for logging; the originating borrow or return has
// already completed and is not rolled back.
func (s *activityService) Process(ctx context.Context, event domain.LoanEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.LoanEventsErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("record loan event: %w", err)
	}

	metrics.LoanEventsProcessedTotal.WithLabelValues(string(event.Action)).Inc()

	s.log.Debug().
		Str("book_id", event.BookID).
		Str("user_id", event.UserID).
		Str("action", string(event.Action)).
		Msg("loan event recorded")
	return nil
}
