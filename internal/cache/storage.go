package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const expiresAtMetadata = "expires_at"

// CloudStorageCache implements cache using Google Cloud Storage with JSON format
type CloudStorageCache struct {
	client     *storage.Client
	bucketName string
	duration   time.Duration
	prefix     string
}

// NewCloudStorageCache creates a new Cloud Storage cache. A non-empty endpoint
// targets an emulator and disables authentication.
func NewCloudStorageCache(ctx context.Context, bucketName, endpoint string, duration time.Duration) (*CloudStorageCache, error) {
	if bucketName == "" {
		return nil, errors.New("bucket name is required")
	}

	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &CloudStorageCache{
		client:     client,
		bucketName: bucketName,
		duration:   duration,
		prefix:     "cache/",
	}, nil
}

func (c *CloudStorageCache) object(key string) *storage.ObjectHandle {
	return c.client.Bucket(c.bucketName).Object(c.prefix + key + ".json")
}

// Get retrieves an entry from Cloud Storage
func (c *CloudStorageCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	reader, err := c.object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("opening object reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object data: %w", err)
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unmarshaling cache entry: %w", err)
	}

	if time.Now().After(entry.ExpiresAt) {
		if err := c.Delete(ctx, key); err != nil {
			return nil, fmt.Errorf("deleting expired entry: %w", err)
		}
		return nil, ErrCacheMiss
	}

	return &entry, nil
}

// Set stores an entry in Cloud Storage
func (c *CloudStorageCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	now := time.Now()
	entry.Key = key
	entry.CreatedAt = now
	entry.ExpiresAt = now.Add(c.duration)
	entry.AccessedAt = now

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	writer := c.object(key).NewWriter(ctx)
	writer.ContentType = "application/json"
	writer.Metadata = map[string]string{
		expiresAtMetadata: entry.ExpiresAt.Format(time.RFC3339Nano),
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("writing object data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing object writer: %w", err)
	}

	return nil
}

// Delete removes an entry from Cloud Storage
func (c *CloudStorageCache) Delete(ctx context.Context, key string) error {
	if err := c.object(key).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("deleting object: %w", err)
	}

	return nil
}

// Exists checks if an unexpired entry exists in Cloud Storage
func (c *CloudStorageCache) Exists(ctx context.Context, key string) (bool, error) {
	attrs, err := c.object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("getting object attributes: %w", err)
	}

	return !isExpired(attrs, time.Now()), nil
}

// isExpired reads the expiry from object metadata. Objects without it are
// treated as expired.
func isExpired(attrs *storage.ObjectAttrs, now time.Time) bool {
	raw, ok := attrs.Metadata[expiresAtMetadata]
	if !ok {
		return true
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return true
	}
	return now.After(expiresAt)
}

// Clear removes all entries from Cloud Storage with the cache prefix
func (c *CloudStorageCache) Clear(ctx context.Context) error {
	_, err := c.deleteMatching(ctx, func(*storage.ObjectAttrs) bool { return true })
	return err
}

// PurgeExpired removes expired entries from Cloud Storage
func (c *CloudStorageCache) PurgeExpired(ctx context.Context) (int, error) {
	now := time.Now()
	return c.deleteMatching(ctx, func(attrs *storage.ObjectAttrs) bool {
		return isExpired(attrs, now)
	})
}

func (c *CloudStorageCache) deleteMatching(ctx context.Context, match func(*storage.ObjectAttrs) bool) (int, error) {
	bucket := c.client.Bucket(c.bucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: c.prefix})

	removed := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return removed, fmt.Errorf("listing objects: %w", err)
		}

		if !match(attrs) {
			continue
		}

		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			return removed, fmt.Errorf("deleting object %s: %w", attrs.Name, err)
		}
		removed++
	}

	return removed, nil
}

// GetStats returns cache statistics for Cloud Storage. Hit and miss counts are
// not tracked.
func (c *CloudStorageCache) GetStats(ctx context.Context) (*Stats, error) {
	it := c.client.Bucket(c.bucketName).Objects(ctx, &storage.Query{Prefix: c.prefix})

	stats := &Stats{}

	var totalAge time.Duration
	now := time.Now()

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}

		stats.TotalEntries++
		stats.MemoryUsage += attrs.Size

		if stats.OldestEntry.IsZero() || attrs.Created.Before(stats.OldestEntry) {
			stats.OldestEntry = attrs.Created
		}

		totalAge += now.Sub(attrs.Created)

		if isExpired(attrs, now) {
			stats.ExpiredEntries++
		}
	}

	if stats.TotalEntries > 0 {
		stats.AverageAge = totalAge / time.Duration(stats.TotalEntries)
	}

	return stats, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorageCache) Close() error {
	return c.client.Close()
}
