package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/internal/domain/repositories"
	"github.com/KMuszynski/dxly/internal/infrastructure/observability"
)

// SymptomInfo is a symptom library entry prepared for API consumers.
type SymptomInfo struct {
	ID              string              `json:"id"`
	DisplayName     string              `json:"display_name"`
	GlobalFollowUps []entities.FollowUp `json:"global_follow_ups"`
	UniqueFollowUps []entities.FollowUp `json:"unique_follow_ups"`
}

// DiseaseInfo is a disease profile summary prepared for API consumers.
type DiseaseInfo struct {
	ID           string   `json:"id"`
	CommonName   string   `json:"common_name"`
	Category     string   `json:"category"`
	Prevalence   float64  `json:"prevalence"`
	SymptomCount int      `json:"symptom_count"`
	Symptoms     []string `json:"symptoms"`
}

// DiseaseCatalog is the full disease listing with the known categories.
type DiseaseCatalog struct {
	Categories []string      `json:"categories"`
	Diseases   []DiseaseInfo `json:"diseases"`
}

// DiagnosisService wires the two ranking engines to their reference data
// and records per-request analytics.
type DiagnosisService struct {
	caseTables   repositories.CaseTableRepository
	profiles     repositories.DiseaseProfileRepository
	library      repositories.SymptomLibraryRepository
	cooccurrence *CooccurrenceService
	differential *DifferentialService
	analytics    *DiagnosisAnalyticsService
	metrics      *observability.Metrics
}

// NewDiagnosisService creates a new diagnosis service. The analytics
// service and metrics may be nil, in which case requests are not tracked.
func NewDiagnosisService(
	caseTables repositories.CaseTableRepository,
	profiles repositories.DiseaseProfileRepository,
	library repositories.SymptomLibraryRepository,
	analytics *DiagnosisAnalyticsService,
	metrics *observability.Metrics,
) *DiagnosisService {
	return &DiagnosisService{
		caseTables:   caseTables,
		profiles:     profiles,
		library:      library,
		cooccurrence: NewCooccurrenceService(),
		differential: NewDifferentialService(),
		analytics:    analytics,
		metrics:      metrics,
	}
}

// Diagnose ranks diseases against the case table for a flat symptom list.
func (s *DiagnosisService) Diagnose(ctx context.Context, symptoms []string, topN int) ([]entities.DiseaseMatch, error) {
	start := time.Now()

	table, err := s.caseTables.Load(ctx)
	if err != nil {
		return nil, err
	}

	results := s.cooccurrence.Rank(table, symptoms, topN)

	logger := observability.LoggerFromContext(ctx)
	logger.Debug().
		Int("symptoms", len(symptoms)).
		Int("results", len(results)).
		Dur("took", time.Since(start)).
		Msg("co-occurrence ranking completed")

	if s.metrics != nil {
		observability.RecordEngineMetric(ctx, s.metrics, "cooccurrence", len(results), time.Since(start))
	}
	s.track(ctx, "cooccurrence", len(symptoms), results, nil, start)
	return results, nil
}

// Differential ranks disease profiles against a structured symptom report,
// keeping only candidates at or above minConfidence. Profiles are loaded
// fresh on every call.
func (s *DiagnosisService) Differential(ctx context.Context, report entities.PatientReport, topN int, minConfidence float64) ([]entities.DiagnosisResult, error) {
	start := time.Now()

	profiles, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}

	results := s.differential.TopDifferential(profiles, report, topN, minConfidence)

	logger := observability.LoggerFromContext(ctx)
	logger.Debug().
		Int("symptoms", len(report)).
		Int("results", len(results)).
		Dur("took", time.Since(start)).
		Msg("differential ranking completed")

	if s.metrics != nil {
		observability.RecordEngineMetric(ctx, s.metrics, "differential", len(results), time.Since(start))
	}
	s.track(ctx, "differential", len(report), nil, results, start)
	return results, nil
}

// ListSymptoms returns the symptom library sorted by display name.
func (s *DiagnosisService) ListSymptoms(ctx context.Context) ([]SymptomInfo, error) {
	library, err := s.library.Load(ctx)
	if err != nil {
		return nil, err
	}

	symptoms := make([]SymptomInfo, 0, len(library))
	for id, profile := range library {
		displayName := profile.DisplayName
		if displayName == "" {
			displayName = id
		}
		symptoms = append(symptoms, SymptomInfo{
			ID:              id,
			DisplayName:     displayName,
			GlobalFollowUps: followUpsOrEmpty(profile.GlobalFollowUps),
			UniqueFollowUps: followUpsOrEmpty(profile.UniqueFollowUps),
		})
	}

	sort.Slice(symptoms, func(i, j int) bool {
		if symptoms[i].DisplayName != symptoms[j].DisplayName {
			return symptoms[i].DisplayName < symptoms[j].DisplayName
		}
		return symptoms[i].ID < symptoms[j].ID
	})

	return symptoms, nil
}

// ListDiseases returns disease summaries sorted by common name, optionally
// filtered by category (case-insensitive).
func (s *DiagnosisService) ListDiseases(ctx context.Context, category string) (*DiseaseCatalog, error) {
	profiles, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}

	categories := map[string]struct{}{}
	diseases := make([]DiseaseInfo, 0, len(profiles))

	for id, profile := range profiles {
		categories[profile.Category] = struct{}{}

		if category != "" && !strings.EqualFold(profile.Category, category) {
			continue
		}

		symptomNames := make([]string, 0, len(profile.Symptoms))
		for name := range profile.Symptoms {
			symptomNames = append(symptomNames, name)
		}
		sort.Strings(symptomNames)

		diseases = append(diseases, DiseaseInfo{
			ID:           id,
			CommonName:   commonNameOrID(profile, id),
			Category:     profile.Category,
			Prevalence:   profile.Prevalence,
			SymptomCount: len(symptomNames),
			Symptoms:     symptomNames,
		})
	}

	sort.Slice(diseases, func(i, j int) bool {
		if diseases[i].CommonName != diseases[j].CommonName {
			return diseases[i].CommonName < diseases[j].CommonName
		}
		return diseases[i].ID < diseases[j].ID
	})

	categoryList := make([]string, 0, len(categories))
	for c := range categories {
		categoryList = append(categoryList, c)
	}
	sort.Strings(categoryList)

	return &DiseaseCatalog{Categories: categoryList, Diseases: diseases}, nil
}

func (s *DiagnosisService) track(ctx context.Context, engine string, symptomCount int, matches []entities.DiseaseMatch, diagnoses []entities.DiagnosisResult, start time.Time) {
	if s.analytics == nil {
		return
	}

	event := &entities.DiagnosisEvent{
		Engine:       engine,
		SymptomCount: symptomCount,
		LatencyMs:    time.Since(start).Milliseconds(),
	}
	if len(matches) > 0 {
		event.ResultCount = len(matches)
		event.TopDisease = matches[0].Disease
		event.TopScore = matches[0].Score
	}
	if len(diagnoses) > 0 {
		event.ResultCount = len(diagnoses)
		event.TopDisease = diagnoses[0].Disease
		event.TopScore = diagnoses[0].Confidence
	}

	s.analytics.TrackDiagnosis(ctx, event)
}

func followUpsOrEmpty(followUps []entities.FollowUp) []entities.FollowUp {
	if followUps == nil {
		return []entities.FollowUp{}
	}
	return followUps
}
