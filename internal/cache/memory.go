package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process page cache backed by go-cache. A batch
// run over several dossiers hits the same corporate sites repeatedly,
// so cached fetches stay valid for the whole run.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a cache with the given default TTL and expired
// entry sweep interval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) Get(key string) ([]byte, bool) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

// Set stores value under key. A zero ttl uses the cache default.
func (m *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Delete(key string) {
	m.store.Delete(key)
}

func (m *MemoryCache) Clear() {
	m.store.Flush()
}
