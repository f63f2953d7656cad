package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

const (
	strongMatchThreshold   = 0.8
	missingImportanceFloor = 0.7
	prevalenceBoostFactor  = 0.2
	explanationSeparator   = " | "
	maxConfidence          = 100.0
)

// DifferentialService ranks disease profiles against a structured patient
// symptom report. It is stateless and safe for concurrent use; the
// profile map is treated as an immutable snapshot for the duration of a
// call.
type DifferentialService struct{}

// NewDifferentialService creates a new differential diagnosis service.
func NewDifferentialService() *DifferentialService {
	return &DifferentialService{}
}

// symptomMatchQuality scores how well the patient's attribute values for
// one symptom satisfy the profile's expectations. With no expectations,
// presence alone is a full match. Every expectation key carries equal
// weight.
func symptomMatchQuality(expectation entities.SymptomExpectation, attributes map[string]interface{}) float64 {
	if len(expectation.Expectations) == 0 {
		return 1.0
	}

	total := 0.0
	for key, expected := range expectation.Expectations {
		total += expected.Match(attributes[key])
	}
	return total / float64(len(expectation.Expectations))
}

// Diagnose scores every disease profile against the patient report and
// returns the surviving candidates sorted by confidence, best first.
// Profiles with no evidentiary support at all are excluded regardless of
// their computed confidence.
func (s *DifferentialService) Diagnose(profiles map[string]entities.DiseaseProfile, report entities.PatientReport) []entities.DiagnosisResult {
	// Maps iterate in random order; walk profiles by id so identical
	// inputs always produce identical output.
	diseaseIDs := make([]string, 0, len(profiles))
	for id := range profiles {
		diseaseIDs = append(diseaseIDs, id)
	}
	sort.Strings(diseaseIDs)

	results := make([]entities.DiagnosisResult, 0, len(profiles))

	for _, diseaseID := range diseaseIDs {
		profile := profiles[diseaseID]
		if len(profile.Symptoms) == 0 {
			continue
		}

		if result, ok := s.scoreProfile(diseaseID, profile, report); ok {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return results
}

func (s *DifferentialService) scoreProfile(diseaseID string, profile entities.DiseaseProfile, report entities.PatientReport) (entities.DiagnosisResult, bool) {
	symptomNames := make([]string, 0, len(profile.Symptoms))
	for name := range profile.Symptoms {
		symptomNames = append(symptomNames, name)
	}
	sort.Strings(symptomNames)

	totalScore := 0.0
	maxPossible := 0.0
	matched := []entities.SymptomMatch{}
	partiallyMatched := []entities.SymptomMatch{}
	missing := []entities.MissingSymptom{}
	negative := []entities.NegativeMatch{}

	for _, name := range symptomNames {
		expectation := profile.Symptoms[name]
		importance := expectation.Importance

		if importance < 0 {
			// Negative weight: the absence of this symptom is evidence
			// for the diagnosis. Reporting it adds nothing, which acts
			// as an implicit penalty.
			weight := math.Abs(importance)
			maxPossible += weight

			if _, reported := report[name]; !reported {
				totalScore += weight
				note := expectation.Note
				if note == "" {
					note = fmt.Sprintf("Absence of %s supports this diagnosis", name)
				}
				negative = append(negative, entities.NegativeMatch{Symptom: name, Note: note})
			}
			continue
		}

		maxPossible += importance

		attributes, reported := report[name]
		if reported {
			quality := symptomMatchQuality(expectation, attributes)
			totalScore += importance * quality

			match := entities.SymptomMatch{
				Symptom:      name,
				MatchQuality: int(math.Round(quality * 100)),
				Importance:   int(math.Round(importance * 100)),
			}
			if quality >= strongMatchThreshold {
				matched = append(matched, match)
			} else if quality > 0 {
				partiallyMatched = append(partiallyMatched, match)
			}
		} else if importance >= missingImportanceFloor {
			missing = append(missing, entities.MissingSymptom{
				Symptom:    name,
				Importance: int(math.Round(importance * 100)),
			})
		}
	}

	if len(matched) == 0 && len(partiallyMatched) == 0 && len(negative) == 0 {
		return entities.DiagnosisResult{}, false
	}

	baseConfidence := 0.0
	if maxPossible > 0 {
		baseConfidence = totalScore / maxPossible * 100
	}

	// Prevalence acts as a mild Bayesian prior: common diseases get up
	// to a 20% boost, capped at 100.
	prevalenceFactor := 1.0 + profile.Prevalence*prevalenceBoostFactor
	confidence := math.Min(maxConfidence, baseConfidence*prevalenceFactor)

	return entities.DiagnosisResult{
		Disease:          diseaseID,
		CommonName:       commonNameOrID(profile, diseaseID),
		Category:         profile.Category,
		Confidence:       round1(confidence),
		MatchedSymptoms:  matched,
		PartiallyMatched: partiallyMatched,
		MissingSymptoms:  missing,
		NegativeMatches:  negative,
		Explanation:      buildExplanation(matched, partiallyMatched, missing, negative),
	}, true
}

// TopDifferential keeps only diagnoses at or above the confidence
// threshold and returns the first topN of the ranked remainder.
func (s *DifferentialService) TopDifferential(profiles map[string]entities.DiseaseProfile, report entities.PatientReport, topN int, minConfidence float64) []entities.DiagnosisResult {
	ranked := s.Diagnose(profiles, report)

	filtered := make([]entities.DiagnosisResult, 0, len(ranked))
	for _, result := range ranked {
		if result.Confidence >= minConfidence {
			filtered = append(filtered, result)
		}
	}

	if topN > 0 && topN < len(filtered) {
		filtered = filtered[:topN]
	}
	return filtered
}

func buildExplanation(matched, partiallyMatched []entities.SymptomMatch, missing []entities.MissingSymptom, negative []entities.NegativeMatch) string {
	parts := []string{}

	if len(matched) > 0 {
		parts = append(parts, "Strong match on: "+joinSymptoms(matched))
	}
	if len(partiallyMatched) > 0 {
		parts = append(parts, "Partial match on: "+joinSymptoms(partiallyMatched))
	}
	for _, nm := range negative {
		parts = append(parts, nm.Note)
	}
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = m.Symptom
		}
		parts = append(parts, "Consider checking for: "+strings.Join(names, ", "))
	}

	return strings.Join(parts, explanationSeparator)
}

func joinSymptoms(matches []entities.SymptomMatch) string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Symptom
	}
	return strings.Join(names, ", ")
}

func commonNameOrID(profile entities.DiseaseProfile, diseaseID string) string {
	if profile.CommonName != "" {
		return profile.CommonName
	}
	return diseaseID
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
