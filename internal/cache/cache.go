package cache

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"time"

	"github.com/pep299/headline-search/internal/model"
)

// Cache interface defines cache operations
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	PurgeExpired(ctx context.Context) (int, error)
	Close() error
}

// CacheEntry represents a cached search result
type CacheEntry struct {
	Key         string                 `json:"key"`
	Params      model.SearchParams     `json:"params"`
	Articles    []model.DisplayArticle `json:"articles"`
	CreatedAt   time.Time              `json:"created_at"`
	ExpiresAt   time.Time              `json:"expires_at"`
	AccessedAt  time.Time              `json:"accessed_at"`
	AccessCount int                    `json:"access_count"`
}

// Stats represents cache statistics
type Stats struct {
	TotalEntries   int           `json:"total_entries"`
	MaxEntries     int           `json:"max_entries,omitempty"`
	HitCount       int64         `json:"hit_count"`
	MissCount      int64         `json:"miss_count"`
	HitRate        float64       `json:"hit_rate"`
	EvictionCount  int64         `json:"eviction_count"`
	MemoryUsage    int64         `json:"memory_usage_bytes"`
	OldestEntry    time.Time     `json:"oldest_entry"`
	AverageAge     time.Duration `json:"average_age"`
	ExpiredEntries int           `json:"expired_entries"`
}

// Manager handles cache operations with convenience methods
type Manager struct {
	cache Cache
}

// Options configures NewManager
type Options struct {
	Type       string // "memory" or "cloud-storage"
	TTL        time.Duration
	MaxEntries int
	Bucket     string
	Endpoint   string
}

// NewManager creates a new cache manager
func NewManager(ctx context.Context, opts Options) (*Manager, error) {
	var cache Cache

	switch opts.Type {
	case "memory":
		cache = NewMemoryCache(opts.TTL, opts.MaxEntries)
	case "cloud-storage":
		var err error
		cache, err = NewCloudStorageCache(ctx, opts.Bucket, opts.Endpoint, opts.TTL)
		if err != nil {
			return nil, fmt.Errorf("creating cloud storage cache: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", opts.Type)
	}

	return &Manager{cache: cache}, nil
}

// NewManagerWithCache wraps an existing Cache implementation
func NewManagerWithCache(cache Cache) *Manager {
	return &Manager{cache: cache}
}

// GetArticles retrieves cached articles for a search
func (m *Manager) GetArticles(ctx context.Context, params model.SearchParams) ([]model.DisplayArticle, error) {
	entry, err := m.cache.Get(ctx, GenerateKey(params))
	if err != nil {
		return nil, err
	}

	return entry.Articles, nil
}

// SetArticles caches the articles found for a search
func (m *Manager) SetArticles(ctx context.Context, params model.SearchParams, articles []model.DisplayArticle) error {
	entry := &CacheEntry{
		Params:   params,
		Articles: articles,
	}

	return m.cache.Set(ctx, GenerateKey(params), entry)
}

// IsCached checks if a search is already cached
func (m *Manager) IsCached(ctx context.Context, params model.SearchParams) (bool, error) {
	return m.cache.Exists(ctx, GenerateKey(params))
}

// GetStats returns cache statistics
func (m *Manager) GetStats(ctx context.Context) (*Stats, error) {
	return m.cache.GetStats(ctx)
}

// Clear clears all cached entries
func (m *Manager) Clear(ctx context.Context) error {
	return m.cache.Clear(ctx)
}

// PurgeExpired removes expired entries and returns how many were removed
func (m *Manager) PurgeExpired(ctx context.Context) (int, error) {
	return m.cache.PurgeExpired(ctx)
}

// Close closes the underlying cache
func (m *Manager) Close() error {
	return m.cache.Close()
}

// GenerateKey generates a cache key for a search. The API key is never part of it.
func GenerateKey(params model.SearchParams) string {
	hash := md5.Sum([]byte(params.Canonical()))
	return fmt.Sprintf("search:%x", hash)
}

// estimateMemoryUsage estimates memory usage of a cache entry without JSON marshaling
func estimateMemoryUsage(entry *CacheEntry) int64 {
	size := int64(len(entry.Key))
	for _, a := range entry.Articles {
		size += int64(len(a.Title) + len(a.URLToImage) + len(a.Summary) + len(a.PublishTime) + len(a.ArticleLink))
	}

	// time.Time fields and slice headers
	size += 128

	return size
}

// Common cache errors
var (
	ErrCacheMiss = errors.New("cache miss")
)
