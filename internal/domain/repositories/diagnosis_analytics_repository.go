package repositories

import (
	"context"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

// DiagnosisAnalyticsRepository defines the interface for recording
// diagnosis request analytics
type DiagnosisAnalyticsRepository interface {
	// LogEvent records one diagnosis request
	LogEvent(ctx context.Context, event *entities.DiagnosisEvent) error

	// GetZeroResultEvents retrieves recent requests that produced no
	// candidates, newest first
	GetZeroResultEvents(ctx context.Context, limit int) ([]*entities.DiagnosisEvent, error)
}
