package providers

import (
	"context"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

// SymptomHit is one autocomplete match from the symptom index.
type SymptomHit struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SymptomSearchProvider defines the interface for symptom autocomplete
// search (e.g. Typesense)
type SymptomSearchProvider interface {
	// InitSchema ensures the symptom collection exists
	InitSchema(ctx context.Context) error

	// Index indexes one symptom library entry
	Index(ctx context.Context, id string, profile entities.SymptomProfile) error

	// Search returns symptoms matching the query, best first
	Search(ctx context.Context, query string, limit int) ([]SymptomHit, error)

	// Delete removes a symptom from the index
	Delete(ctx context.Context, id string) error
}
