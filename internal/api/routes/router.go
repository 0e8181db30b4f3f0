package routes

import (
	"net/http"

	"github.com/kurortly/search-backend/internal/api/handlers"
	"github.com/kurortly/search-backend/internal/api/middleware"
	"github.com/kurortly/search-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler *handlers.SearchHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		searchHandler:   searchHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Cross-type search
	r.mux.HandleFunc("GET /api/v1/search", r.searchHandler.SearchAll)

	// Object endpoints
	r.mux.HandleFunc("GET /api/v1/objects/search", r.searchHandler.SearchObjects)
	r.mux.HandleFunc("GET /api/v1/objects/filter/{path...}", r.searchHandler.FilterObjects)

	// Geography endpoints
	r.mux.HandleFunc("GET /api/v1/countries/search", r.searchHandler.SearchCountries)
	r.mux.HandleFunc("GET /api/v1/regions/search", r.searchHandler.SearchRegions)
	r.mux.HandleFunc("GET /api/v1/cities/search", r.searchHandler.SearchCities)

	// Dictionary endpoints
	r.mux.HandleFunc("GET /api/v1/medical-profiles/search", r.searchHandler.SearchProfiles)
	r.mux.HandleFunc("GET /api/v1/diseases/search", r.searchHandler.SearchDiseases)
	r.mux.HandleFunc("GET /api/v1/therapies/search", r.searchHandler.SearchTherapies)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}
