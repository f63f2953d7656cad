package routes

import (
	"encoding/json"
	"net/http"

	"github.com/KMuszynski/dxly/internal/api/handlers"
	"github.com/KMuszynski/dxly/internal/api/middleware"
	"github.com/KMuszynski/dxly/internal/infrastructure/observability"
)

const serviceVersion = "1.0.0"

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	diagnoseHandler     *handlers.DiagnoseHandler
	differentialHandler *handlers.DifferentialHandler
	symptomHandler      *handlers.SymptomHandler
	diseaseHandler      *handlers.DiseaseHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	diagnoseHandler *handlers.DiagnoseHandler,
	differentialHandler *handlers.DifferentialHandler,
	symptomHandler *handlers.SymptomHandler,
	diseaseHandler *handlers.DiseaseHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		diagnoseHandler:     diagnoseHandler,
		differentialHandler: differentialHandler,
		symptomHandler:      symptomHandler,
		diseaseHandler:      diseaseHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "diagnosis-engine",
			"version": serviceVersion,
		})
	})

	// Diagnosis endpoints
	r.mux.HandleFunc("POST /api/diagnose", r.diagnoseHandler.Diagnose)
	r.mux.HandleFunc("GET /api/diagnose", r.diagnoseHandler.DiagnoseByQuery)
	r.mux.HandleFunc("POST /api/differential", r.differentialHandler.Differential)

	// Symptom library endpoints
	r.mux.HandleFunc("GET /api/symptoms", r.symptomHandler.ListSymptoms)
	r.mux.HandleFunc("GET /api/symptoms/search", r.symptomHandler.SearchSymptoms)
	r.mux.HandleFunc("GET /api/symptoms/{id}", r.symptomHandler.GetSymptom)

	// Disease catalog endpoints
	r.mux.HandleFunc("GET /api/diseases", r.diseaseHandler.ListDiseases)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
