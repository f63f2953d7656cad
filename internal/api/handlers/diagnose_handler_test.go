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

type stubRanker struct {
	symptoms []string
	topN     int
	results  []entities.DiseaseMatch
	err      error
}

func (s *stubRanker) Diagnose(ctx context.Context, symptoms []string, topN int) ([]entities.DiseaseMatch, error) {
	s.symptoms = symptoms
	s.topN = topN
	return s.results, s.err
}

func TestDiagnoseHandler_Success(t *testing.T) {
	ranker := &stubRanker{
		results: []entities.DiseaseMatch{
			{Disease: "flu", Score: 42.5, MatchCount: 3, CaseCount: 2},
		},
	}
	handler := handlers.NewDiagnoseHandler(ranker, nil)

	body := `{"symptoms":["fever","cough"],"top_n":5}`
	req := httptest.NewRequest("POST", "/api/diagnose", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Diagnose(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"fever", "cough"}, ranker.symptoms)
	assert.Equal(t, 5, ranker.topN)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(1), response["results_count"])
}

func TestDiagnoseHandler_MissingBody(t *testing.T) {
	handler := handlers.NewDiagnoseHandler(&stubRanker{}, nil)

	req := httptest.NewRequest("POST", "/api/diagnose", strings.NewReader(""))
	w := httptest.NewRecorder()

	handler.Diagnose(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiagnoseHandler_MissingSymptoms(t *testing.T) {
	handler := handlers.NewDiagnoseHandler(&stubRanker{}, nil)

	req := httptest.NewRequest("POST", "/api/diagnose", strings.NewReader(`{"top_n":5}`))
	w := httptest.NewRecorder()

	handler.Diagnose(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, false, response["success"])
	assert.Contains(t, response["error"], "symptoms field is required")
}

func TestDiagnoseHandler_SymptomsNotAList(t *testing.T) {
	handler := handlers.NewDiagnoseHandler(&stubRanker{}, nil)

	req := httptest.NewRequest("POST", "/api/diagnose", strings.NewReader(`{"symptoms":"fever"}`))
	w := httptest.NewRecorder()

	handler.Diagnose(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiagnoseHandler_EmptySymptomList(t *testing.T) {
	handler := handlers.NewDiagnoseHandler(&stubRanker{}, nil)

	req := httptest.NewRequest("POST", "/api/diagnose", strings.NewReader(`{"symptoms":[]}`))
	w := httptest.NewRecorder()

	handler.Diagnose(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiagnoseHandler_TopNOutOfRange(t *testing.T) {
	ranker := &stubRanker{}
	handler := handlers.NewDiagnoseHandler(ranker, nil)

	req := httptest.NewRequest("POST", "/api/diagnose", strings.NewReader(`{"symptoms":["fever"],"top_n":500}`))
	w := httptest.NewRecorder()

	handler.Diagnose(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, ranker.topN)
}

func TestDiagnoseHandler_ByQuery(t *testing.T) {
	ranker := &stubRanker{}
	handler := handlers.NewDiagnoseHandler(ranker, nil)

	req := httptest.NewRequest("GET", "/api/diagnose?symptoms=fever,%20cough&top_n=3", nil)
	w := httptest.NewRecorder()

	handler.DiagnoseByQuery(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"fever", "cough"}, ranker.symptoms)
	assert.Equal(t, 3, ranker.topN)
}

func TestDiagnoseHandler_ByQuery_MissingParam(t *testing.T) {
	handler := handlers.NewDiagnoseHandler(&stubRanker{}, nil)

	req := httptest.NewRequest("GET", "/api/diagnose", nil)
	w := httptest.NewRecorder()

	handler.DiagnoseByQuery(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
