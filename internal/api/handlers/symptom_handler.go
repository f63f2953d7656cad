package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/KMuszynski/dxly/internal/application/services"
	"github.com/KMuszynski/dxly/internal/domain/providers"
)

const defaultSearchLimit = 10

// SymptomLister defines the symptom library operations used by the handler.
type SymptomLister interface {
	ListSymptoms(ctx context.Context) ([]services.SymptomInfo, error)
}

// SymptomHandler handles symptom library HTTP requests.
type SymptomHandler struct {
	service SymptomLister
	search  providers.SymptomSearchProvider
}

// NewSymptomHandler creates a new symptom handler. The search provider
// may be nil, in which case autocomplete falls back to a library scan.
func NewSymptomHandler(service SymptomLister, search providers.SymptomSearchProvider) *SymptomHandler {
	return &SymptomHandler{
		service: service,
		search:  search,
	}
}

// ListSymptoms handles GET /api/symptoms
func (h *SymptomHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	symptoms, err := h.service.ListSymptoms(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load symptom library")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"count":    len(symptoms),
		"symptoms": symptoms,
	})
}

// GetSymptom handles GET /api/symptoms/{id}
func (h *SymptomHandler) GetSymptom(w http.ResponseWriter, r *http.Request) {
	symptomID := r.PathValue("id")
	if symptomID == "" {
		respondWithError(w, http.StatusBadRequest, "symptom ID is required")
		return
	}

	symptoms, err := h.service.ListSymptoms(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load symptom library")
		return
	}

	for _, symptom := range symptoms {
		if symptom.ID == symptomID || strings.EqualFold(symptom.DisplayName, symptomID) {
			respondWithJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"symptom": symptom,
			})
			return
		}
	}

	respondWithError(w, http.StatusNotFound, "symptom not found")
}

// SearchSymptoms handles GET /api/symptoms/search
func (h *SymptomHandler) SearchSymptoms(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	limit := defaultSearchLimit
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n >= 1 && n <= 50 {
		limit = n
	}

	hits, err := h.searchSymptoms(r.Context(), query, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to search symptoms")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(hits),
		"hits":    hits,
	})
}

func (h *SymptomHandler) searchSymptoms(ctx context.Context, query string, limit int) ([]providers.SymptomHit, error) {
	if h.search != nil {
		return h.search.Search(ctx, query, limit)
	}

	// Substring fallback when no search index is configured.
	symptoms, err := h.service.ListSymptoms(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	hits := []providers.SymptomHit{}
	for _, symptom := range symptoms {
		if len(hits) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(symptom.DisplayName), needle) ||
			strings.Contains(strings.ToLower(symptom.ID), needle) {
			hits = append(hits, providers.SymptomHit{
				ID:          symptom.ID,
				DisplayName: symptom.DisplayName,
			})
		}
	}

	return hits, nil
}
