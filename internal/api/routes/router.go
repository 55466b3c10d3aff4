package routes

import (
	"net/http"

	"github.com/petmily/vetpricediscovery/backend/internal/api/handlers"
	"github.com/petmily/vetpricediscovery/backend/internal/api/middleware"
	"github.com/petmily/vetpricediscovery/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	estimateHandler *handlers.EstimateHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	estimateHandler *handlers.EstimateHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		estimateHandler: estimateHandler,
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

	// Estimation endpoint
	r.mux.HandleFunc("GET /api/estimates", r.estimateHandler.GetEstimate)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
