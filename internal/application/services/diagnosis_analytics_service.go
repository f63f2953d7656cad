package services

import (
	"context"
	"log"
	"time"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/internal/domain/repositories"
)

// DiagnosisAnalyticsService records diagnosis request analytics without
// blocking the request path.
type DiagnosisAnalyticsService struct {
	repo repositories.DiagnosisAnalyticsRepository
}

// NewDiagnosisAnalyticsService creates a new analytics service.
func NewDiagnosisAnalyticsService(repo repositories.DiagnosisAnalyticsRepository) *DiagnosisAnalyticsService {
	return &DiagnosisAnalyticsService{repo: repo}
}

// TrackDiagnosis logs the event in the background.
func (s *DiagnosisAnalyticsService) TrackDiagnosis(ctx context.Context, event *entities.DiagnosisEvent) {
	go func() {
		// Use a fresh context since the request context might be cancelled
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.LogEvent(bgCtx, event); err != nil {
			log.Printf("Warning: failed to log diagnosis event: %v", err)
		}
	}()
}

// GetZeroResultEvents returns recent requests that produced no candidates.
func (s *DiagnosisAnalyticsService) GetZeroResultEvents(ctx context.Context, limit int) ([]*entities.DiagnosisEvent, error) {
	return s.repo.GetZeroResultEvents(ctx, limit)
}
