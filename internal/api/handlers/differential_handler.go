package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/KMuszynski/dxly/internal/domain/entities"
)

const (
	defaultDifferentialTopN = 5
	maxDifferentialTopN     = 20
	defaultMinConfidence    = 10.0
)

// DifferentialDiagnoser defines the profile-matching operation used by
// the handler.
type DifferentialDiagnoser interface {
	Differential(ctx context.Context, report entities.PatientReport, topN int, minConfidence float64) ([]entities.DiagnosisResult, error)
}

// DifferentialHandler handles structured differential diagnosis requests.
type DifferentialHandler struct {
	service DifferentialDiagnoser
}

// NewDifferentialHandler creates a new differential handler.
func NewDifferentialHandler(service DifferentialDiagnoser) *DifferentialHandler {
	return &DifferentialHandler{service: service}
}

type differentialRequest struct {
	Symptoms entities.PatientReport `json:"symptoms"`
	Options  struct {
		TopN          *int     `json:"top_n"`
		MinConfidence *float64 `json:"min_confidence"`
	} `json:"options"`
}

// Differential handles POST /api/differential
func (h *DifferentialHandler) Differential(w http.ResponseWriter, r *http.Request) {
	var payload differentialRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "request body is required")
		return
	}

	if len(payload.Symptoms) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one symptom is required")
		return
	}

	topN := defaultDifferentialTopN
	if payload.Options.TopN != nil {
		topN = clampInt(*payload.Options.TopN, 1, maxDifferentialTopN)
	}

	minConfidence := defaultMinConfidence
	if payload.Options.MinConfidence != nil {
		minConfidence = clampFloat(*payload.Options.MinConfidence, 0, 100)
	}

	results, err := h.service.Differential(r.Context(), payload.Symptoms, topN, minConfidence)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to run differential diagnosis")
		return
	}

	inputSymptoms := make([]string, 0, len(payload.Symptoms))
	for name := range payload.Symptoms {
		inputSymptoms = append(inputSymptoms, name)
	}
	sort.Strings(inputSymptoms)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"input_symptoms":  inputSymptoms,
		"diagnosis_count": len(results),
		"diagnoses":       results,
	})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
