package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petmily/vetpricediscovery/backend/internal/adapters/cache"
	"github.com/petmily/vetpricediscovery/backend/internal/adapters/quota"
	"github.com/petmily/vetpricediscovery/backend/internal/adapters/seed"
	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
)

func newEstimateService(repo *stubRecordRepository, table *seed.Table, limits TierLimits) *EstimateService {
	fusion := NewFusionService(repo, table, DefaultMinimumSampleSize, DefaultFetchLimit)
	return NewEstimateService(fusion, cache.NewMemoryAdapter(), quota.NewMemoryAdapter(), nil, limits, DefaultCacheTTLSeconds)
}

func openLimits() TierLimits {
	return TierLimits{Anonymous: 1000, Member: 1000}
}

func TestEstimateCost_SeedOnlyScenario(t *testing.T) {
	repo := &stubRecordRepository{}
	svc := newEstimateService(repo, seed.NewTable(), openLimits())

	estimate, err := svc.EstimateCost(context.Background(), "스케일링", "dog", "", "caller-1", entities.TierMember)
	require.NoError(t, err)

	assert.Equal(t, entities.SourceSeed, estimate.Stats.Source)
	assert.Equal(t, 280000.0, estimate.Stats.Avg)
	assert.Equal(t, DefaultMinimumSampleSize, estimate.Stats.SampleSize)
}

func TestEstimateCost_LiveDataScenario(t *testing.T) {
	repo := &stubRecordRepository{records: makeRecords(12, 300000, "스케일링", "")}
	svc := newEstimateService(repo, seed.NewTable(), openLimits())

	estimate, err := svc.EstimateCost(context.Background(), "스케일링", "dog", "", "caller-1", entities.TierMember)
	require.NoError(t, err)

	assert.Equal(t, entities.SourceLive, estimate.Stats.Source)
	assert.Equal(t, 12, estimate.Stats.SampleSize)
	assert.Equal(t, 300000.0, estimate.Stats.Avg)
}

func TestEstimateCost_UnknownProcedureIsNotFound(t *testing.T) {
	repo := &stubRecordRepository{}
	svc := newEstimateService(repo, seed.NewTable(), openLimits())

	_, err := svc.EstimateCost(context.Background(), "완전히존재하지않는검사", "dog", "", "caller-1", entities.TierMember)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestEstimateCost_InvalidInputRejectedBeforeQuota(t *testing.T) {
	repo := &stubRecordRepository{}
	svc := newEstimateService(repo, seed.NewTable(), TierLimits{Anonymous: 1})

	// Invalid requests must not consume quota
	_, err := svc.EstimateCost(context.Background(), "", "dog", "", "caller-1", entities.TierAnonymous)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.EstimateCost(context.Background(), "checkup", "bird", "", "caller-1", entities.TierAnonymous)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	// The single anonymous slot is still available
	_, err = svc.EstimateCost(context.Background(), "스케일링", "dog", "", "caller-1", entities.TierAnonymous)
	assert.NoError(t, err)
}

func TestEstimateCost_EquivalentQueriesShareCache(t *testing.T) {
	repo := &stubRecordRepository{records: makeRecords(12, 90000, "blood test", "seoul")}
	svc := newEstimateService(repo, seed.NewTable(), openLimits())
	ctx := context.Background()

	first, err := svc.EstimateCost(ctx, "Blood Test", "dog", "Seoul", "caller-1", entities.TierMember)
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	// Same query modulo case and whitespace: served from cache, no
	// second store round trip
	second, err := svc.EstimateCost(ctx, "  blood test ", "DOG", "seoul", "caller-1", entities.TierMember)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first, second)

	// A different species is a different cache entry
	_, err = svc.EstimateCost(ctx, "blood test", "cat", "seoul", "caller-1", entities.TierMember)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestEstimateCost_CacheHitStillConsumesQuota(t *testing.T) {
	repo := &stubRecordRepository{records: makeRecords(12, 90000, "blood test", "")}
	svc := newEstimateService(repo, seed.NewTable(), TierLimits{Member: 2})
	ctx := context.Background()

	_, err := svc.EstimateCost(ctx, "blood test", "dog", "", "caller-1", entities.TierMember)
	require.NoError(t, err)
	_, err = svc.EstimateCost(ctx, "blood test", "dog", "", "caller-1", entities.TierMember)
	require.NoError(t, err)

	// The third call is a cache hit but the quota was spent on the way in
	_, err = svc.EstimateCost(ctx, "blood test", "dog", "", "caller-1", entities.TierMember)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRateLimited))
}

func TestEstimateCost_QuotaTiering(t *testing.T) {
	repo := &stubRecordRepository{records: makeRecords(12, 300000, "스케일링", "")}
	svc := newEstimateService(repo, seed.NewTable(), TierLimits{Anonymous: 2, Member: 4})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.EstimateCost(ctx, "스케일링", "dog", "", "anon-1", entities.TierAnonymous)
		require.NoError(t, err)
	}
	_, err := svc.EstimateCost(ctx, "스케일링", "dog", "", "anon-1", entities.TierAnonymous)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRateLimited))

	// Members get their own, larger allowance
	for i := 0; i < 4; i++ {
		_, err := svc.EstimateCost(ctx, "스케일링", "dog", "", "member-1", entities.TierMember)
		require.NoError(t, err)
	}
	_, err = svc.EstimateCost(ctx, "스케일링", "dog", "", "member-1", entities.TierMember)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRateLimited))
}

func TestEstimateCost_PremiumTierIsUnlimited(t *testing.T) {
	repo := &stubRecordRepository{records: makeRecords(12, 300000, "스케일링", "")}
	svc := newEstimateService(repo, seed.NewTable(), TierLimits{Anonymous: 1, Member: 1})
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := svc.EstimateCost(ctx, "스케일링", "dog", "", "premium-1", entities.TierPremium)
		require.NoError(t, err)
	}
}

func TestEstimateCost_FailedEstimatesAreNotCached(t *testing.T) {
	storeErr := apperrors.NewExternalError("price record store unavailable", nil)
	repo := &stubRecordRepository{err: storeErr}
	svc := newEstimateService(repo, seed.NewTableWith(nil), openLimits())
	ctx := context.Background()

	_, err := svc.EstimateCost(ctx, "스케일링", "dog", "", "caller-1", entities.TierMember)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	// Once the store recovers the next call goes through, proving no
	// error response was cached
	repo.err = nil
	repo.records = makeRecords(12, 300000, "스케일링", "")
	_, err = svc.EstimateCost(ctx, "스케일링", "dog", "", "caller-1", entities.TierMember)
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestEstimateCost_NilCacheAndQuotaAreOptional(t *testing.T) {
	repo := &stubRecordRepository{records: makeRecords(12, 300000, "스케일링", "")}
	fusion := NewFusionService(repo, seed.NewTable(), DefaultMinimumSampleSize, DefaultFetchLimit)
	svc := NewEstimateService(fusion, nil, nil, nil, openLimits(), DefaultCacheTTLSeconds)

	estimate, err := svc.EstimateCost(context.Background(), "스케일링", "dog", "", "caller-1", entities.TierAnonymous)
	require.NoError(t, err)
	assert.Equal(t, entities.SourceLive, estimate.Stats.Source)
}

func TestLimitFor(t *testing.T) {
	limits := TierLimits{Anonymous: 20, Member: 200}

	assert.Equal(t, 20, limits.LimitFor(entities.TierAnonymous))
	assert.Equal(t, 200, limits.LimitFor(entities.TierMember))
	assert.Equal(t, 0, limits.LimitFor(entities.TierPremium))
}
