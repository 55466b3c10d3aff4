package quota

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
)

func TestCheckAndIncrement_EnforcesMonthlyLimit(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	limit := 5
	for i := 0; i < limit; i++ {
		assert.NoError(t, adapter.CheckAndIncrement(ctx, "caller-1", limit), "call %d", i+1)
	}

	err := adapter.CheckAndIncrement(ctx, "caller-1", limit)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRateLimited))
}

func TestCheckAndIncrement_IdentitiesAreIndependent(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.CheckAndIncrement(ctx, "caller-1", 1))
	require.Error(t, adapter.CheckAndIncrement(ctx, "caller-1", 1))

	assert.NoError(t, adapter.CheckAndIncrement(ctx, "caller-2", 1))
}

func TestCheckAndIncrement_UnlimitedNeverRejects(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, adapter.CheckAndIncrement(ctx, "premium-caller", 0))
	}
}

func TestCheckAndIncrement_ResetsAtMonthBoundary(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	january := time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC)
	adapter.now = func() time.Time { return january }

	require.NoError(t, adapter.CheckAndIncrement(ctx, "caller-1", 1))
	require.Error(t, adapter.CheckAndIncrement(ctx, "caller-1", 1))

	// A new period key simply starts a fresh counter; the old one is
	// ignored, not deleted
	adapter.now = func() time.Time { return january.Add(2 * time.Hour) }
	assert.NoError(t, adapter.CheckAndIncrement(ctx, "caller-1", 1))
}

func TestCheckAndIncrement_AtomicUnderConcurrency(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	limit := 10
	workers := 50

	var allowed, rejected int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if err := adapter.CheckAndIncrement(ctx, "shared-caller", limit); err != nil {
				atomic.AddInt64(&rejected, 1)
			} else {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	// Exactly limit callers may pass; no double-claimed last slot
	assert.Equal(t, int64(limit), allowed)
	assert.Equal(t, int64(workers-limit), rejected)
}

func TestCounterKey_UsesCalendarMonth(t *testing.T) {
	at := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "caller-1|2026-08", CounterKey("caller-1", at))
}
