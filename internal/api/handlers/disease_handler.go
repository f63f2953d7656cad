package handlers

import (
	"context"
	"net/http"

	"github.com/KMuszynski/dxly/internal/application/services"
)

// DiseaseLister defines the disease catalog operation used by the handler.
type DiseaseLister interface {
	ListDiseases(ctx context.Context, category string) (*services.DiseaseCatalog, error)
}

// DiseaseHandler handles disease catalog HTTP requests.
type DiseaseHandler struct {
	service DiseaseLister
}

// NewDiseaseHandler creates a new disease handler.
func NewDiseaseHandler(service DiseaseLister) *DiseaseHandler {
	return &DiseaseHandler{service: service}
}

// ListDiseases handles GET /api/diseases
func (h *DiseaseHandler) ListDiseases(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	catalog, err := h.service.ListDiseases(r.Context(), category)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load disease profiles")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"count":      len(catalog.Diseases),
		"categories": catalog.Categories,
		"diseases":   catalog.Diseases,
	})
}
