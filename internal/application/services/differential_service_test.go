package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

func decodeProfiles(t *testing.T, raw string) map[string]entities.DiseaseProfile {
	t.Helper()
	var profiles map[string]entities.DiseaseProfile
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		t.Fatalf("failed to decode profiles: %v", err)
	}
	return profiles
}

func TestDiagnose_StrongAndPartialClassification(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"influenza": {
			"common_name": "Influenza",
			"category": "Respiratory",
			"prevalence": 0.1,
			"symptoms": {
				"Fever": {
					"importance": 0.9,
					"expectations": {"intensity": [7, 10], "onset": "sudden"}
				},
				"Cough": {"importance": 0.6}
			}
		}
	}`)

	report := entities.PatientReport{
		"Fever": {"intensity": 8, "onset": "sudden"},
		"Cough": {"present": true},
	}

	results := svc.Diagnose(profiles, report)

	assert.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "influenza", r.Disease)
	assert.Equal(t, "Influenza", r.CommonName)
	assert.Equal(t, "Respiratory", r.Category)
	// Both expectations satisfied plus presence-only cough: full score.
	assert.Len(t, r.MatchedSymptoms, 2)
	assert.Empty(t, r.PartiallyMatched)
	assert.Contains(t, r.Explanation, "Strong match on: Cough, Fever")
}

func TestDiagnose_PartialMatchBelowThreshold(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"influenza": {
			"symptoms": {
				"Fever": {
					"importance": 0.9,
					"expectations": {"intensity": [7, 10], "onset": "sudden"}
				}
			}
		}
	}`)

	// Non-numeric intensity scores zero against the range, onset
	// matches: quality 0.5.
	report := entities.PatientReport{
		"Fever": {"intensity": "unknown", "onset": "sudden"},
	}

	results := svc.Diagnose(profiles, report)

	assert.Len(t, results, 1)
	assert.Empty(t, results[0].MatchedSymptoms)
	assert.Len(t, results[0].PartiallyMatched, 1)
	assert.Equal(t, 50, results[0].PartiallyMatched[0].MatchQuality)
	assert.Contains(t, results[0].Explanation, "Partial match on: Fever")
}

func TestDiagnose_NegativeImportance(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"strep_throat": {
			"prevalence": 0.05,
			"symptoms": {
				"Cough": {"importance": -0.6, "note": "Strep throat typically presents without cough"}
			}
		}
	}`)

	// Absent cough is evidence for the diagnosis.
	withoutCough := svc.Diagnose(profiles, entities.PatientReport{})
	assert.Len(t, withoutCough, 1)
	assert.Equal(t, 100.0, withoutCough[0].Confidence)
	assert.Len(t, withoutCough[0].NegativeMatches, 1)
	assert.Equal(t, "Strep throat typically presents without cough", withoutCough[0].NegativeMatches[0].Note)
	assert.Equal(t, withoutCough[0].NegativeMatches[0].Note, withoutCough[0].Explanation)

	// Reporting the symptom leaves no evidence at all, so the disease
	// drops out entirely.
	withCough := svc.Diagnose(profiles, entities.PatientReport{"Cough": {"present": true}})
	assert.Empty(t, withCough)
}

func TestDiagnose_NegativeMatchDefaultNote(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"strep_throat": {
			"symptoms": {"Cough": {"importance": -0.5}}
		}
	}`)

	results := svc.Diagnose(profiles, entities.PatientReport{})

	assert.Len(t, results, 1)
	assert.Equal(t, "Absence of Cough supports this diagnosis", results[0].NegativeMatches[0].Note)
}

func TestDiagnose_MissingImportantSymptom(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"pneumonia": {
			"symptoms": {
				"Cough": {"importance": 0.9},
				"Fever": {"importance": 0.8},
				"Fatigue": {"importance": 0.3}
			}
		}
	}`)

	results := svc.Diagnose(profiles, entities.PatientReport{"Cough": {"present": true}})

	assert.Len(t, results, 1)
	// Fever crosses the importance floor for reporting, fatigue does not.
	assert.Len(t, results[0].MissingSymptoms, 1)
	assert.Equal(t, "Fever", results[0].MissingSymptoms[0].Symptom)
	assert.Contains(t, results[0].Explanation, "Consider checking for: Fever")
}

func TestDiagnose_SkipsProfilesWithoutSymptoms(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"empty": {"common_name": "Empty", "symptoms": {}},
		"flu": {"symptoms": {"Fever": {"importance": 0.9}}}
	}`)

	results := svc.Diagnose(profiles, entities.PatientReport{"Fever": {"present": true}})

	assert.Len(t, results, 1)
	assert.Equal(t, "flu", results[0].Disease)
}

func TestDiagnose_CommonNameFallsBackToID(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"flu": {"symptoms": {"Fever": {"importance": 0.9}}}
	}`)

	results := svc.Diagnose(profiles, entities.PatientReport{"Fever": {}})

	assert.Len(t, results, 1)
	assert.Equal(t, "flu", results[0].CommonName)
	assert.Equal(t, entities.DefaultCategory, results[0].Category)
}

func TestDiagnose_PrevalenceBoostIsCapped(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"common": {"prevalence": 0.9, "symptoms": {"Fever": {"importance": 0.9}}}
	}`)

	results := svc.Diagnose(profiles, entities.PatientReport{"Fever": {}})

	assert.Len(t, results, 1)
	assert.Equal(t, 100.0, results[0].Confidence)
}

func TestDiagnose_Deterministic(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"a": {"symptoms": {"Fever": {"importance": 0.9}}},
		"b": {"symptoms": {"Fever": {"importance": 0.9}}},
		"c": {"symptoms": {"Fever": {"importance": 0.9}}}
	}`)
	report := entities.PatientReport{"Fever": {"present": true}}

	first := svc.Diagnose(profiles, report)
	second := svc.Diagnose(profiles, report)

	assert.Equal(t, first, second)
	// Equal confidence keeps the stable id order.
	assert.Equal(t, "a", first[0].Disease)
	assert.Equal(t, "b", first[1].Disease)
	assert.Equal(t, "c", first[2].Disease)
}

func TestTopDifferential_FiltersAndTruncates(t *testing.T) {
	svc := NewDifferentialService()
	profiles := decodeProfiles(t, `{
		"high_a": {"symptoms": {"Fever": {"importance": 0.9}}},
		"high_b": {"symptoms": {"Fever": {"importance": 0.9}}},
		"low": {"symptoms": {
			"Fever": {"importance": 0.2},
			"Rash": {"importance": 0.9}
		}}
	}`)
	report := entities.PatientReport{"Fever": {"present": true}}

	results := svc.TopDifferential(profiles, report, 1, 50.0)

	assert.Len(t, results, 1)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Confidence, 50.0)
	}
}
