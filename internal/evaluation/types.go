package evaluation

import (
	"time"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

// Engine identifies which ranking engine a golden case exercises.
type Engine string

const (
	EngineCooccurrence Engine = "cooccurrence" // flat symptom list against the case table
	EngineDifferential Engine = "differential" // structured report against disease profiles
)

// ValidEngines returns all valid engine values.
func ValidEngines() []Engine {
	return []Engine{EngineCooccurrence, EngineDifferential}
}

// IsValid checks if the engine value is one of the defined constants.
func (e Engine) IsValid() bool {
	switch e {
	case EngineCooccurrence, EngineDifferential:
		return true
	}
	return false
}

// GoldenCase represents a labeled patient presentation with the expected
// diagnoses.
type GoldenCase struct {
	ID               string                 `json:"id"`
	Engine           Engine                 `json:"engine"`
	Symptoms         []string               `json:"symptoms"`
	Report           entities.PatientReport `json:"report"`
	ExpectedDiseases []string               `json:"expected_diseases"`
	Difficulty       string                 `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single golden case.
type EvalResult struct {
	CaseID            string
	Engine            Engine
	RecallAt10        float64
	MRRAt10           float64
	ResultCount       int
	RetrievedDiseases []string
	Latency           time.Duration
}

// EvalSummary holds aggregate metrics across all golden cases.
type EvalSummary struct {
	TotalCases    int
	AvgRecallAt10 float64
	AvgMRRAt10    float64
	AvgLatency    time.Duration
	CasesWithHits int // cases that returned at least 1 candidate
	ByEngine      map[Engine]*EngineSummary
}

// EngineSummary holds metrics grouped by engine.
type EngineSummary struct {
	Count         int
	AvgRecallAt10 float64
	AvgMRRAt10    float64
}
