// Package quota enforces monthly per-caller usage limits.
package quota

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/providers"
	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
)

// MemoryAdapter implements QuotaProvider with mutex-guarded in-process
// counters. Counters for past months are never deleted, only ignored;
// growth is one entry per identity per month, which is accepted for the
// expected traffic volume. The Redis adapter bounds growth via TTLs.
type MemoryAdapter struct {
	mu       sync.Mutex
	counters map[string]int

	now func() time.Time
}

// NewMemoryAdapter creates a new in-memory quota adapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		counters: make(map[string]int),
		now:      time.Now,
	}
}

// CheckAndIncrement atomically checks the identity's usage for the current
// calendar month against the limit and increments it. The read-compare-
// increment sequence happens under a single lock acquisition, so two
// concurrent calls can never both pass when only one slot remains.
func (a *MemoryAdapter) CheckAndIncrement(ctx context.Context, identityKey string, monthlyLimit int) error {
	if monthlyLimit <= providers.UnlimitedQuota {
		return nil
	}

	key := CounterKey(identityKey, a.now())

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.counters[key] >= monthlyLimit {
		return apperrors.NewRateLimitedError("monthly query limit reached")
	}
	a.counters[key]++
	return nil
}

// CounterKey combines an identity with the calendar-month period so that
// usage resets implicitly at month boundaries
func CounterKey(identityKey string, at time.Time) string {
	return fmt.Sprintf("%s|%s", identityKey, at.UTC().Format("2006-01"))
}
