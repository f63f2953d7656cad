package repositories

import (
	"context"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

// DiseaseProfileRepository defines the interface for loading structured
// disease profiles. Profiles are reference data: implementations return a
// consistent snapshot and never mutate previously returned maps.
type DiseaseProfileRepository interface {
	// Load returns all disease profiles keyed by disease id
	Load(ctx context.Context) (map[string]entities.DiseaseProfile, error)
}

// SymptomLibraryRepository defines the interface for loading the symptom
// library with its follow-up question metadata
type SymptomLibraryRepository interface {
	// Load returns all symptom profiles keyed by symptom id
	Load(ctx context.Context) (map[string]entities.SymptomProfile, error)
}
