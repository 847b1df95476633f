// Package cache memoizes classification reports. The engine is
// deterministic, so a report keyed by the sample record and the engine
// thresholds never goes stale; the TTL only bounds memory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/soilgrade/soilgrade/internal/model"
)

// Key fingerprints a sample together with the engine thresholds that
// shape its classification. Identical inputs always map to the same key.
func Key(engine model.EngineConfig, sample *model.SampleInput) string {
	payload, err := json.Marshal(struct {
		Engine model.EngineConfig `json:"engine"`
		Sample *model.SampleInput `json:"sample"`
	}{engine, sample})
	if err != nil {
		// SampleInput is plain data; this cannot fail in practice.
		return ""
	}
	hash := sha256.Sum256(payload)
	return "soilgrade:v1:" + hex.EncodeToString(hash[:])
}

// MemoryCache is an in-memory report cache.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL and
// cleanup interval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a marshaled report.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a marshaled report. A zero ttl uses the cache default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
