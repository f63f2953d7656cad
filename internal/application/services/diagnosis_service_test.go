package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/internal/infrastructure/observability"
)

type stubCaseTableRepo struct {
	table *entities.CaseTable
}

func (s *stubCaseTableRepo) Load(ctx context.Context) (*entities.CaseTable, error) {
	return s.table, nil
}

type stubProfileRepo struct {
	profiles map[string]entities.DiseaseProfile
}

func (s *stubProfileRepo) Load(ctx context.Context) (map[string]entities.DiseaseProfile, error) {
	return s.profiles, nil
}

type stubLibraryRepo struct {
	library map[string]entities.SymptomProfile
}

func (s *stubLibraryRepo) Load(ctx context.Context) (map[string]entities.SymptomProfile, error) {
	return s.library, nil
}

func TestListSymptomsBreaksDisplayNameTiesByID(t *testing.T) {
	libraryRepo := &stubLibraryRepo{library: map[string]entities.SymptomProfile{
		"fever_child": {DisplayName: "Fever"},
		"fever_adult": {DisplayName: "Fever"},
		"cough":       {DisplayName: "Cough"},
	}}
	service := NewDiagnosisService(nil, nil, libraryRepo, nil, nil)

	for i := 0; i < 10; i++ {
		symptoms, err := service.ListSymptoms(context.Background())
		require.NoError(t, err)
		require.Len(t, symptoms, 3)
		assert.Equal(t, "cough", symptoms[0].ID)
		assert.Equal(t, "fever_adult", symptoms[1].ID)
		assert.Equal(t, "fever_child", symptoms[2].ID)
	}
}

func TestListDiseasesBreaksCommonNameTiesByID(t *testing.T) {
	profileRepo := &stubProfileRepo{profiles: map[string]entities.DiseaseProfile{
		"flu_b":       {CommonName: "Flu", Category: "Respiratory"},
		"flu_a":       {CommonName: "Flu", Category: "Respiratory"},
		"common_cold": {CommonName: "Common Cold", Category: "Respiratory"},
	}}
	service := NewDiagnosisService(nil, profileRepo, nil, nil, nil)

	for i := 0; i < 10; i++ {
		catalog, err := service.ListDiseases(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, catalog.Diseases, 3)
		assert.Equal(t, "common_cold", catalog.Diseases[0].ID)
		assert.Equal(t, "flu_a", catalog.Diseases[1].ID)
		assert.Equal(t, "flu_b", catalog.Diseases[2].ID)
	}
}

func TestDiagnoseRecordsEngineMetrics(t *testing.T) {
	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	caseTableRepo := &stubCaseTableRepo{table: testCaseTable()}
	service := NewDiagnosisService(caseTableRepo, nil, nil, nil, metrics)

	results, err := service.Diagnose(context.Background(), []string{"fever", "cough"}, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestDifferentialWorksWithoutMetrics(t *testing.T) {
	profileRepo := &stubProfileRepo{profiles: map[string]entities.DiseaseProfile{
		"flu": {
			CommonName: "Flu",
			Category:   "Respiratory",
			Prevalence: 0.1,
			Symptoms: map[string]entities.SymptomExpectation{
				"fever": {Importance: 1.0},
			},
		},
	}}
	service := NewDiagnosisService(nil, profileRepo, nil, nil, nil)

	report := entities.PatientReport{"fever": {}}
	results, err := service.Differential(context.Background(), report, 5, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}
