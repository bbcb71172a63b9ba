// Package cache provides the fetched-page cache used by the website
// scraper.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched page bodies keyed by URL hash. A zero ttl on Set
// uses the implementation's default lifetime.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string)
	Clear()
}

// CacheKey derives a stable key from a URL. The version prefix lets a
// format change invalidate old entries wholesale.
func CacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "deckforge:v1:" + hex.EncodeToString(sum[:])
}
