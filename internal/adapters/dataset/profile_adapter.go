package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/internal/domain/repositories"
)

// metadataKeyPrefix marks non-data entries (comments, versioning) in the
// profile and library JSON files.
const metadataKeyPrefix = "_"

// ProfileAdapter loads disease profiles from a JSON file. Profiles are
// re-read on every call so edits to the file show up without a restart;
// each caller gets its own consistent snapshot.
type ProfileAdapter struct {
	path string
}

var _ repositories.DiseaseProfileRepository = (*ProfileAdapter)(nil)

// NewProfileAdapter creates a disease profile adapter for the given path.
func NewProfileAdapter(path string) *ProfileAdapter {
	return &ProfileAdapter{path: path}
}

// Load reads and decodes the disease profiles, excluding metadata keys.
func (a *ProfileAdapter) Load(ctx context.Context) (map[string]entities.DiseaseProfile, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read disease profiles: %w", err)
	}

	var raw map[string]entities.DiseaseProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse disease profiles: %w", err)
	}

	profiles := make(map[string]entities.DiseaseProfile, len(raw))
	for id, profile := range raw {
		if strings.HasPrefix(id, metadataKeyPrefix) {
			continue
		}
		profiles[id] = profile
	}

	return profiles, nil
}

// SymptomLibraryAdapter loads the symptom library from a JSON file,
// re-reading on every call like the profile adapter.
type SymptomLibraryAdapter struct {
	path string
}

var _ repositories.SymptomLibraryRepository = (*SymptomLibraryAdapter)(nil)

// NewSymptomLibraryAdapter creates a symptom library adapter for the
// given path.
func NewSymptomLibraryAdapter(path string) *SymptomLibraryAdapter {
	return &SymptomLibraryAdapter{path: path}
}

// Load reads and decodes the symptom library, excluding metadata keys.
func (a *SymptomLibraryAdapter) Load(ctx context.Context) (map[string]entities.SymptomProfile, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read symptom library: %w", err)
	}

	var raw map[string]entities.SymptomProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse symptom library: %w", err)
	}

	library := make(map[string]entities.SymptomProfile, len(raw))
	for id, profile := range raw {
		if strings.HasPrefix(id, metadataKeyPrefix) {
			continue
		}
		library[id] = profile
	}

	return library, nil
}
