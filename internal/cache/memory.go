package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a bounded in-memory cache. When full, the least recently
// accessed entry is evicted.
type MemoryCache struct {
	entries       map[string]*CacheEntry
	mutex         sync.RWMutex
	duration      time.Duration
	maxEntries    int
	hitCount      int64
	missCount     int64
	evictionCount int64
	now           func() time.Time
}

// NewMemoryCache creates a new in-memory cache. maxEntries <= 0 means unbounded.
func NewMemoryCache(duration time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]*CacheEntry),
		duration:   duration,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get retrieves an entry from cache
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.missCount++
		return nil, ErrCacheMiss
	}

	now := c.now()
	if now.After(entry.ExpiresAt) {
		delete(c.entries, key)
		c.missCount++
		return nil, ErrCacheMiss
	}

	entry.AccessedAt = now
	entry.AccessCount++
	c.hitCount++

	return entry, nil
}

// Set stores an entry in cache
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 {
		for len(c.entries) >= c.maxEntries {
			c.evictOldest()
		}
	}

	now := c.now()
	entry.Key = key
	entry.CreatedAt = now
	entry.ExpiresAt = now.Add(c.duration)
	entry.AccessedAt = now
	entry.AccessCount = 0

	c.entries[key] = entry
	return nil
}

// evictOldest drops the least recently accessed entry. Caller holds the lock.
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.AccessedAt.Before(oldest) {
			oldestKey = key
			oldest = entry.AccessedAt
		}
	}
	if oldestKey == "" {
		return
	}
	delete(c.entries, oldestKey)
	c.evictionCount++
}

// Delete removes an entry from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
	return nil
}

// Exists checks if an entry exists in cache
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return false, nil
	}

	if c.now().After(entry.ExpiresAt) {
		return false, nil
	}

	return true, nil
}

// Clear removes all entries from cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*CacheEntry)
	c.hitCount = 0
	c.missCount = 0
	c.evictionCount = 0
	return nil
}

// GetStats returns cache statistics
func (c *MemoryCache) GetStats(ctx context.Context) (*Stats, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	stats := &Stats{
		TotalEntries:  len(c.entries),
		MaxEntries:    c.maxEntries,
		HitCount:      c.hitCount,
		MissCount:     c.missCount,
		EvictionCount: c.evictionCount,
	}

	if c.hitCount+c.missCount > 0 {
		stats.HitRate = float64(c.hitCount) / float64(c.hitCount+c.missCount)
	}

	var totalAge time.Duration
	now := c.now()

	for _, entry := range c.entries {
		stats.MemoryUsage += estimateMemoryUsage(entry)

		if stats.OldestEntry.IsZero() || entry.CreatedAt.Before(stats.OldestEntry) {
			stats.OldestEntry = entry.CreatedAt
		}

		totalAge += now.Sub(entry.CreatedAt)

		if now.After(entry.ExpiresAt) {
			stats.ExpiredEntries++
		}
	}

	if len(c.entries) > 0 {
		stats.AverageAge = totalAge / time.Duration(len(c.entries))
	}

	return stats, nil
}

// PurgeExpired removes expired entries
func (c *MemoryCache) PurgeExpired(ctx context.Context) (int, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Close is a no-op for the memory cache
func (c *MemoryCache) Close() error {
	return nil
}
