package services

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/attribute"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
	"github.com/petmily/vetpricediscovery/backend/internal/domain/providers"
	"github.com/petmily/vetpricediscovery/backend/internal/infrastructure/observability"
	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
	"github.com/petmily/vetpricediscovery/backend/pkg/normalize"
)

// DefaultCacheTTLSeconds is how long a computed estimate stays cached
const DefaultCacheTTLSeconds = 24 * 60 * 60

// FusionEngine defines the estimate service's view of the fusion engine
type FusionEngine interface {
	Estimate(ctx context.Context, query entities.PriceQuery) (*entities.PriceEstimate, error)
}

// TierLimits maps caller tiers onto monthly quota limits
type TierLimits struct {
	Anonymous int
	Member    int
}

// LimitFor returns the monthly limit for a tier. Premium callers are
// unlimited.
func (t TierLimits) LimitFor(tier entities.CallerTier) int {
	switch tier {
	case entities.TierPremium:
		return providers.UnlimitedQuota
	case entities.TierMember:
		return t.Member
	default:
		return t.Anonymous
	}
}

// EstimateService orchestrates a cost query: quota check, cache lookup,
// fusion on miss, cache write. Both the cache and the quota store are
// injected so tests get a fresh instance each.
type EstimateService struct {
	fusion  FusionEngine
	cache   providers.CacheProvider
	quota   providers.QuotaProvider
	metrics *observability.Metrics

	limits     TierLimits
	ttlSeconds int
}

// NewEstimateService creates a new estimate service
func NewEstimateService(
	fusion FusionEngine,
	cache providers.CacheProvider,
	quota providers.QuotaProvider,
	metrics *observability.Metrics,
	limits TierLimits,
	ttlSeconds int,
) *EstimateService {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultCacheTTLSeconds
	}
	return &EstimateService{
		fusion:     fusion,
		cache:      cache,
		quota:      quota,
		metrics:    metrics,
		limits:     limits,
		ttlSeconds: ttlSeconds,
	}
}

// EstimateCost is the single entry point of the estimation core
func (s *EstimateService) EstimateCost(
	ctx context.Context,
	rawText, rawSpecies, rawRegion string,
	callerIdentity string,
	callerTier entities.CallerTier,
) (*entities.PriceEstimate, error) {
	ctx, span := observability.StartSpan(ctx, "EstimateService.EstimateCost")
	defer span.End()

	query, err := normalize.Query(rawText, rawSpecies, rawRegion)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("estimate.species", string(query.Species)),
		attribute.Bool("estimate.region_filtered", query.HasRegionFilter()),
	)

	if s.quota != nil {
		if err := s.quota.CheckAndIncrement(ctx, callerIdentity, s.limits.LimitFor(callerTier)); err != nil {
			if s.metrics != nil && apperrors.IsType(err, apperrors.ErrorTypeRateLimited) {
				observability.RecordQuotaRejected(ctx, s.metrics, string(callerTier))
			}
			return nil, err
		}
	}

	key := normalize.CacheKey(query)

	if cached := s.fromCache(ctx, key); cached != nil {
		span.SetAttributes(attribute.Bool("estimate.cache_hit", true))
		if s.metrics != nil {
			s.metrics.CacheHitCount.Add(ctx, 1)
		}
		return cached, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMissCount.Add(ctx, 1)
	}

	estimate, err := s.fusion.Estimate(ctx, query)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	s.toCache(ctx, key, estimate)
	return estimate, nil
}

// fromCache decodes a cached estimate. Any cache failure is treated as a
// miss: staleness handling is the provider's job and a corrupt payload
// just means recomputing.
func (s *EstimateService) fromCache(ctx context.Context, key string) *entities.PriceEstimate {
	if s.cache == nil {
		return nil
	}

	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	// Decode into a fresh value so the caller never shares the cached
	// allocation
	estimate := &entities.PriceEstimate{}
	if err := json.Unmarshal(payload, estimate); err != nil {
		logger := observability.LoggerFromContext(ctx)
		logger.Warn().Err(err).Str("key", key).Msg("failed to decode cached estimate")
		return nil
	}
	return estimate
}

func (s *EstimateService) toCache(ctx context.Context, key string, estimate *entities.PriceEstimate) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(estimate)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttlSeconds); err != nil {
		logger := observability.LoggerFromContext(ctx)
		logger.Warn().Err(err).Str("key", key).Msg("failed to cache estimate")
	}
}
