package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/providers"
	redisclient "github.com/petmily/vetpricediscovery/backend/internal/infrastructure/clients/redis"
	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
)

// counterTTL keeps monthly counters around long enough to cover clock
// skew across the month boundary, then lets Redis evict them.
const counterTTL = 40 * 24 * time.Hour

// RedisAdapter implements QuotaProvider on Redis INCR. Atomicity of the
// check-then-increment comes from INCR itself: every caller increments
// first and is rejected when the incremented value exceeds the limit, so
// no two callers can both claim the last slot.
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis quota adapter
func NewRedisAdapter(client *redisclient.Client) providers.QuotaProvider {
	return &RedisAdapter{
		client: client,
	}
}

// CheckAndIncrement enforces the monthly limit for an identity
func (a *RedisAdapter) CheckAndIncrement(ctx context.Context, identityKey string, monthlyLimit int) error {
	if monthlyLimit <= providers.UnlimitedQuota {
		return nil
	}

	key := fmt.Sprintf("quota:%s", CounterKey(identityKey, time.Now()))

	count, err := a.client.Client().Incr(ctx, key).Result()
	if err != nil {
		return apperrors.NewInternalError("failed to increment quota counter", err)
	}
	if count == 1 {
		// First use this month; the TTL only has to outlive the period
		a.client.Client().Expire(ctx, key, counterTTL)
	}

	if count > int64(monthlyLimit) {
		return apperrors.NewRateLimitedError("monthly query limit reached")
	}
	return nil
}
