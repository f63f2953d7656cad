package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/KMuszynski/dxly/internal/domain/entities"
	"github.com/KMuszynski/dxly/pkg/utils"
)

const (
	defaultTopN = 10
	maxTopN     = 100
)

// DiagnosisRanker defines the ranking operation used by the handler.
type DiagnosisRanker interface {
	Diagnose(ctx context.Context, symptoms []string, topN int) ([]entities.DiseaseMatch, error)
}

// DiagnoseHandler handles symptom list diagnosis requests.
type DiagnoseHandler struct {
	service    DiagnosisRanker
	normalizer *utils.SymptomNormalizer
}

// NewDiagnoseHandler creates a new diagnose handler. The normalizer may
// be nil, in which case symptom names are passed through unchanged.
func NewDiagnoseHandler(service DiagnosisRanker, normalizer *utils.SymptomNormalizer) *DiagnoseHandler {
	return &DiagnoseHandler{
		service:    service,
		normalizer: normalizer,
	}
}

type diagnoseRequest struct {
	Symptoms json.RawMessage `json:"symptoms"`
	TopN     *int            `json:"top_n"`
}

// Diagnose handles POST /api/diagnose
func (h *DiagnoseHandler) Diagnose(w http.ResponseWriter, r *http.Request) {
	var payload diagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "request body is required")
		return
	}

	if len(payload.Symptoms) == 0 || string(payload.Symptoms) == "null" {
		respondWithError(w, http.StatusBadRequest, "symptoms field is required")
		return
	}

	var symptoms []string
	if err := json.Unmarshal(payload.Symptoms, &symptoms); err != nil {
		respondWithError(w, http.StatusBadRequest, "symptoms must be a list of strings")
		return
	}
	if len(symptoms) == 0 {
		respondWithError(w, http.StatusBadRequest, "symptoms list cannot be empty")
		return
	}

	topN := defaultTopN
	if payload.TopN != nil && *payload.TopN >= 1 && *payload.TopN <= maxTopN {
		topN = *payload.TopN
	}

	h.rank(w, r, symptoms, topN)
}

// DiagnoseByQuery handles GET /api/diagnose with comma-separated symptoms
func (h *DiagnoseHandler) DiagnoseByQuery(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symptoms")
	if raw == "" {
		respondWithError(w, http.StatusBadRequest, "symptoms query parameter is required (comma-separated)")
		return
	}

	symptoms := []string{}
	for _, s := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			symptoms = append(symptoms, trimmed)
		}
	}
	if len(symptoms) == 0 {
		respondWithError(w, http.StatusBadRequest, "symptoms list cannot be empty")
		return
	}

	topN := defaultTopN
	if n, err := strconv.Atoi(r.URL.Query().Get("top_n")); err == nil && n >= 1 && n <= maxTopN {
		topN = n
	}

	h.rank(w, r, symptoms, topN)
}

func (h *DiagnoseHandler) rank(w http.ResponseWriter, r *http.Request, symptoms []string, topN int) {
	if h.normalizer != nil {
		symptoms = h.normalizer.NormalizeAll(symptoms)
	}

	results, err := h.service.Diagnose(r.Context(), symptoms, topN)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to run diagnosis")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"results":           results,
		"symptoms_provided": symptoms,
		"results_count":     len(results),
	})
}
