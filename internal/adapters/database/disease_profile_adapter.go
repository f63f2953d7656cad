package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/internal/domain/repositories"
	"github.com/KMuszynski/dxly/internal/infrastructure/clients/postgres"
	apperrors "github.com/KMuszynski/dxly/pkg/errors"
)

// DiseaseProfileAdapter implements DiseaseProfileRepository on top of
// PostgreSQL. Profiles live in two tables: `diseases` for the summary
// fields and `disease_symptoms` for the per-symptom expectations, with
// the expectation map stored as JSONB.
type DiseaseProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDiseaseProfileAdapter creates a new disease profile adapter
func NewDiseaseProfileAdapter(client *postgres.Client) repositories.DiseaseProfileRepository {
	return &DiseaseProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Load retrieves all disease profiles as one consistent snapshot.
func (a *DiseaseProfileAdapter) Load(ctx context.Context) (map[string]entities.DiseaseProfile, error) {
	profiles, err := a.loadDiseases(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.loadSymptoms(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (a *DiseaseProfileAdapter) loadDiseases(ctx context.Context) (map[string]entities.DiseaseProfile, error) {
	query, args, err := a.db.Select("id", "common_name", "category", "prevalence").
		From("diseases").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build diseases query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load diseases", err)
	}
	defer rows.Close()

	profiles := make(map[string]entities.DiseaseProfile)
	for rows.Next() {
		var id string
		var commonName, category sql.NullString
		var prevalence sql.NullFloat64

		if err := rows.Scan(&id, &commonName, &category, &prevalence); err != nil {
			return nil, apperrors.NewInternalError("failed to scan disease", err)
		}

		profile := entities.DiseaseProfile{
			CommonName: commonName.String,
			Category:   entities.DefaultCategory,
			Prevalence: entities.DefaultPrevalence,
			Symptoms:   make(map[string]entities.SymptomExpectation),
		}
		if category.Valid && category.String != "" {
			profile.Category = category.String
		}
		if prevalence.Valid {
			profile.Prevalence = prevalence.Float64
		}

		profiles[id] = profile
	}

	return profiles, rows.Err()
}

func (a *DiseaseProfileAdapter) loadSymptoms(ctx context.Context, profiles map[string]entities.DiseaseProfile) error {
	query, args, err := a.db.Select("disease_id", "symptom", "importance", "note", "expectations").
		From("disease_symptoms").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build disease symptoms query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to load disease symptoms", err)
	}
	defer rows.Close()

	for rows.Next() {
		var diseaseID, symptom string
		var importance float64
		var note sql.NullString
		var rawExpectations []byte

		if err := rows.Scan(&diseaseID, &symptom, &importance, &note, &rawExpectations); err != nil {
			return apperrors.NewInternalError("failed to scan disease symptom", err)
		}

		profile, ok := profiles[diseaseID]
		if !ok {
			// Orphaned symptom rows are skipped, not fatal.
			continue
		}

		expectation := entities.SymptomExpectation{
			Importance: importance,
			Note:       note.String,
		}
		if len(rawExpectations) > 0 {
			if err := json.Unmarshal(rawExpectations, &expectation.Expectations); err != nil {
				return apperrors.NewInternalError("failed to decode symptom expectations", err)
			}
		}

		profile.Symptoms[symptom] = expectation
	}

	return rows.Err()
}
