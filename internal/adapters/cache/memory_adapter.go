package cache

import (
	"context"
	"sync"
	"time"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/providers"
)

// MemoryAdapter implements CacheProvider with a mutex-guarded in-process
// map. Expiry is lazy: entries past their deadline are treated as absent
// on read and are never swept in the background, so the map grows with
// the number of distinct keys seen within a TTL window. That bound is
// accepted; deployments needing eviction use the Redis adapter instead.
type MemoryAdapter struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	now func() time.Time
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryAdapter creates a new in-memory cache adapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get retrieves a value from cache. Expired entries count as misses.
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.entries[key]
	if !ok || a.now().After(entry.expiresAt) {
		return nil, providers.ErrCacheMiss
	}

	// Hand out a copy so callers never hold the stored slice
	payload := make([]byte, len(entry.payload))
	copy(payload, entry.payload)
	return payload, nil
}

// Set stores a value, overwriting any existing entry with a fresh expiry
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	payload := make([]byte, len(value))
	copy(payload, value)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries[key] = memoryEntry{
		payload:   payload,
		expiresAt: a.now().Add(time.Duration(expirationSeconds) * time.Second),
	}
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.entries, key)
	return nil
}

// Exists checks if a live entry exists for the key
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.entries[key]
	return ok && !a.now().After(entry.expiresAt), nil
}
