package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
)

// EstimateService defines the handler dependency for cost estimation
type EstimateService interface {
	EstimateCost(ctx context.Context, rawText, rawSpecies, rawRegion, callerIdentity string, callerTier entities.CallerTier) (*entities.PriceEstimate, error)
}

// EstimateHandler handles cost estimation requests
type EstimateHandler struct {
	service EstimateService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(service EstimateService) *EstimateHandler {
	return &EstimateHandler{
		service: service,
	}
}

// GetEstimate handles GET /api/estimates
//
// Caller identity and tier arrive as headers resolved by the surrounding
// application; anonymous callers fall back to their remote address.
func (h *EstimateHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	identity := r.Header.Get("X-Caller-ID")
	tier := entities.ParseCallerTier(r.Header.Get("X-Caller-Tier"))
	if identity == "" {
		identity = remoteHost(r)
		tier = entities.TierAnonymous
	}

	estimate, err := h.service.EstimateCost(
		r.Context(),
		query.Get("query"),
		query.Get("species"),
		query.Get("region"),
		identity,
		tier,
	)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, estimate)
}

func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeRateLimited:
			respondWithError(w, http.StatusTooManyRequests, appErr.Message)
			return
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusServiceUnavailable, "price data temporarily unavailable")
			return
		}
	}
	respondWithError(w, http.StatusInternalServerError, "failed to estimate cost")
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{"error": message})
}
