package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/internal/domain/repositories"
	"github.com/KMuszynski/dxly/internal/infrastructure/clients/postgres"
	apperrors "github.com/KMuszynski/dxly/pkg/errors"
)

type DiagnosisAnalyticsAdapter struct {
	client *postgres.Client
}

func NewDiagnosisAnalyticsAdapter(client *postgres.Client) repositories.DiagnosisAnalyticsRepository {
	return &DiagnosisAnalyticsAdapter{client: client}
}

func (a *DiagnosisAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.DiagnosisEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO diagnosis_analytics
		(id, engine, symptom_count, result_count, top_disease, top_score, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		event.ID,
		event.Engine,
		event.SymptomCount,
		event.ResultCount,
		event.TopDisease,
		event.TopScore,
		event.LatencyMs,
		event.CreatedAt,
	)

	if err != nil {
		return apperrors.NewInternalError("failed to log diagnosis event", err)
	}

	return nil
}

func (a *DiagnosisAnalyticsAdapter) GetZeroResultEvents(ctx context.Context, limit int) ([]*entities.DiagnosisEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, engine, symptom_count, result_count, top_disease, top_score, latency_ms, created_at
		FROM diagnosis_analytics
		WHERE result_count = 0
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := a.client.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get zero result events", err)
	}
	defer rows.Close()

	var events []*entities.DiagnosisEvent
	for rows.Next() {
		e := &entities.DiagnosisEvent{}
		err := rows.Scan(
			&e.ID,
			&e.Engine,
			&e.SymptomCount,
			&e.ResultCount,
			&e.TopDisease,
			&e.TopScore,
			&e.LatencyMs,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan diagnosis event", err)
		}
		events = append(events, e)
	}

	return events, nil
}
