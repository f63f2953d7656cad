package repositories

import (
	"context"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

// CaseTableRepository defines the interface for loading the disease/symptom
// co-occurrence case table
type CaseTableRepository interface {
	// Load returns the case table snapshot
	Load(ctx context.Context) (*entities.CaseTable, error)
}
