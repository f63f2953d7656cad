package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KMuszynski/dxly/internal/api/handlers"
	"github.com/KMuszynski/dxly/internal/domain/entities"
)

type stubDiagnoser struct {
	report        entities.PatientReport
	topN          int
	minConfidence float64
	results       []entities.DiagnosisResult
	err           error
}

func (s *stubDiagnoser) Differential(ctx context.Context, report entities.PatientReport, topN int, minConfidence float64) ([]entities.DiagnosisResult, error) {
	s.report = report
	s.topN = topN
	s.minConfidence = minConfidence
	return s.results, s.err
}

func TestDifferentialHandler_Success(t *testing.T) {
	diagnoser := &stubDiagnoser{
		results: []entities.DiagnosisResult{
			{Disease: "acute_otitis_media", Confidence: 85.5},
		},
	}
	handler := handlers.NewDifferentialHandler(diagnoser)

	body := `{
		"symptoms": {
			"Ear Pain": {"present": true, "intensity": 7},
			"Fever": {"present": true}
		},
		"options": {"top_n": 3, "min_confidence": 20}
	}`
	req := httptest.NewRequest("POST", "/api/differential", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Differential(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, diagnoser.topN)
	assert.Equal(t, 20.0, diagnoser.minConfidence)
	assert.Len(t, diagnoser.report, 2)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(1), response["diagnosis_count"])
	assert.Equal(t, []interface{}{"Ear Pain", "Fever"}, response["input_symptoms"])
}

func TestDifferentialHandler_Defaults(t *testing.T) {
	diagnoser := &stubDiagnoser{}
	handler := handlers.NewDifferentialHandler(diagnoser)

	body := `{"symptoms": {"Fever": {"present": true}}}`
	req := httptest.NewRequest("POST", "/api/differential", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Differential(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, diagnoser.topN)
	assert.Equal(t, 10.0, diagnoser.minConfidence)
}

func TestDifferentialHandler_ClampsOptions(t *testing.T) {
	diagnoser := &stubDiagnoser{}
	handler := handlers.NewDifferentialHandler(diagnoser)

	body := `{"symptoms": {"Fever": {}}, "options": {"top_n": 1000, "min_confidence": -5}}`
	req := httptest.NewRequest("POST", "/api/differential", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Differential(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, diagnoser.topN)
	assert.Equal(t, 0.0, diagnoser.minConfidence)
}

func TestDifferentialHandler_MissingSymptoms(t *testing.T) {
	handler := handlers.NewDifferentialHandler(&stubDiagnoser{})

	req := httptest.NewRequest("POST", "/api/differential", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.Differential(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["error"], "at least one symptom is required")
}

func TestDifferentialHandler_InvalidBody(t *testing.T) {
	handler := handlers.NewDifferentialHandler(&stubDiagnoser{})

	req := httptest.NewRequest("POST", "/api/differential", strings.NewReader("not-json"))
	w := httptest.NewRecorder()

	handler.Differential(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
